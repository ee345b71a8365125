package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

var errSealedDetailsInvalid = errors.New("sealed payment details invalid")

// sealPaymentDetails 以 XChaCha20-Poly1305 加密支付方式明细，输出 base64(nonce||ciphertext)
func sealPaymentDetails(secret string, details map[string]interface{}) (string, error) {
	if len(details) == 0 {
		return "", nil
	}
	plaintext, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// openPaymentDetails 解密支付方式明细
func openPaymentDetails(secret, sealed string) (map[string]interface{}, error) {
	if sealed == "" {
		return map[string]interface{}{}, nil
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errSealedDetailsInvalid
	}
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	if len(raw) < aead.NonceSize() {
		return nil, errSealedDetailsInvalid
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errSealedDetailsInvalid
	}
	details := map[string]interface{}{}
	if err := json.Unmarshal(plaintext, &details); err != nil {
		return nil, errSealedDetailsInvalid
	}
	return details, nil
}
