package alipay

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"

	"github.com/shopspring/decimal"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

var (
	ErrConfigInvalid    = errors.New("alipay config invalid")
	ErrSignGenerate     = errors.New("alipay sign generate failed")
	ErrSignatureInvalid = errors.New("alipay signature invalid")
)

const (
	defaultGatewayURL = "https://openapi.alipay.com/gateway.do"
	pagePayMethod     = "alipay.trade.page.pay"
	pagePayProduct    = "FAST_INSTANT_TRADE_PAY"
	signTypeRSA2      = "RSA2"
	signTypeRSA       = "RSA"
)

// Config 支付宝网页支付配置。
type Config struct {
	AppID           string
	PrivateKey      string
	AlipayPublicKey string
	GatewayURL      string
	NotifyURL       string
	ReturnURL       string
	SignType        string
}

// CreateInput 网页支付下单输入。
type CreateInput struct {
	OutTradeNo string
	Amount     decimal.Decimal
	Subject    string
	Timestamp  time.Time
}

// CreateResult 网页支付下单结果。
type CreateResult struct {
	PayURL     string
	OutTradeNo string
	Method     string
	Signed     bool
	Raw        map[string]interface{}
}

// FromConfig 由应用配置构建支付宝配置。
func FromConfig(cfg config.AlipayConfig) *Config {
	c := &Config{
		AppID:           cfg.AppID,
		PrivateKey:      cfg.PrivateKey,
		AlipayPublicKey: cfg.AlipayPublicKey,
		GatewayURL:      cfg.GatewayURL,
		NotifyURL:       cfg.NotifyURL,
		ReturnURL:       cfg.ReturnURL,
	}
	c.normalize()
	return c
}

// VerifyEnabled 配置了支付宝公钥时才校验回调签名。
func (c *Config) VerifyEnabled() bool {
	return c != nil && strings.TrimSpace(c.AlipayPublicKey) != ""
}

// CreatePagePay 生成网页支付跳转地址，配置私钥时附带 RSA 签名。
func CreatePagePay(cfg *Config, input CreateInput) (*CreateResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	input.OutTradeNo = strings.TrimSpace(input.OutTradeNo)
	if input.OutTradeNo == "" {
		return nil, fmt.Errorf("%w: out_trade_no is required", ErrConfigInvalid)
	}
	if input.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = input.OutTradeNo
	}
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	bizContent, err := json.Marshal(map[string]string{
		"out_trade_no": input.OutTradeNo,
		"total_amount": input.Amount.Round(2).StringFixed(2),
		"subject":      subject,
		"product_code": pagePayProduct,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal biz_content failed", ErrConfigInvalid)
	}

	params := map[string]string{
		"app_id":      cfg.AppID,
		"method":      pagePayMethod,
		"format":      "JSON",
		"charset":     "utf-8",
		"sign_type":   cfg.SignType,
		"timestamp":   timestamp.Format("2006-01-02 15:04:05"),
		"version":     "1.0",
		"notify_url":  cfg.NotifyURL,
		"return_url":  cfg.ReturnURL,
		"biz_content": string(bizContent),
	}
	signed := false
	if strings.TrimSpace(cfg.PrivateKey) != "" {
		sign, err := Sign(buildSignContent(params), cfg.PrivateKey, cfg.SignType)
		if err != nil {
			return nil, err
		}
		params["sign"] = sign
		signed = true
	}

	payURL := buildGatewayPayURL(cfg.GatewayURL, params)
	return &CreateResult{
		PayURL:     payURL,
		OutTradeNo: input.OutTradeNo,
		Method:     pagePayMethod,
		Signed:     signed,
		Raw: map[string]interface{}{
			"pay_url":      payURL,
			"method":       pagePayMethod,
			"out_trade_no": input.OutTradeNo,
		},
	}, nil
}

// Sign 对待签名串做 RSA/RSA2 签名。
func Sign(content, privateKeyRaw, signType string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: empty sign content", ErrSignGenerate)
	}
	privateKey, err := parsePrivateKey(privateKeyRaw)
	if err != nil {
		return "", err
	}
	if strings.ToUpper(strings.TrimSpace(signType)) == signTypeRSA {
		sum := sha1.Sum([]byte(content))
		signBytes, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA1, sum[:])
		if err != nil {
			return "", fmt.Errorf("%w: sign failed", ErrSignGenerate)
		}
		return base64.StdEncoding.EncodeToString(signBytes), nil
	}
	signature, err := utils.SignSHA256WithRSA(content, privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: sign failed", ErrSignGenerate)
	}
	return signature, nil
}

// SignForm 为回调表单生成签名（sign/sign_type 不参与签名）。
func SignForm(form url.Values, privateKeyRaw, signType string) (string, error) {
	return Sign(buildSignContentFromForm(form), privateKeyRaw, signType)
}

// VerifyCallback 校验支付宝异步通知签名。
func VerifyCallback(cfg *Config, form url.Values) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if len(form) == 0 {
		return fmt.Errorf("%w: callback form is empty", ErrSignatureInvalid)
	}
	sign := strings.TrimSpace(form.Get("sign"))
	if sign == "" {
		return fmt.Errorf("%w: sign is required", ErrSignatureInvalid)
	}
	signType := strings.ToUpper(strings.TrimSpace(form.Get("sign_type")))
	if signType == "" {
		signType = cfg.SignType
	}
	if signType != signTypeRSA2 && signType != signTypeRSA {
		return fmt.Errorf("%w: sign_type is invalid", ErrSignatureInvalid)
	}
	content := buildSignContentFromForm(form)
	if content == "" {
		return fmt.Errorf("%w: sign content is empty", ErrSignatureInvalid)
	}
	publicKey, err := parsePublicKey(cfg.AlipayPublicKey)
	if err != nil {
		return err
	}
	signBytes, err := base64.StdEncoding.DecodeString(sign)
	if err != nil {
		return fmt.Errorf("%w: decode sign failed", ErrSignatureInvalid)
	}
	hashType := crypto.SHA256
	var digest []byte
	if signType == signTypeRSA {
		sum := sha1.Sum([]byte(content))
		digest = sum[:]
		hashType = crypto.SHA1
	} else {
		sum := sha256.Sum256([]byte(content))
		digest = sum[:]
	}
	if err := rsa.VerifyPKCS1v15(publicKey, hashType, digest, signBytes); err != nil {
		return fmt.Errorf("%w: verify failed", ErrSignatureInvalid)
	}
	return nil
}

// ToPaymentStatus 映射交易状态到支付状态。
func ToPaymentStatus(tradeStatus string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(tradeStatus)) {
	case constants.AlipayTradeStatusSuccess, constants.AlipayTradeStatusFinished:
		return constants.PaymentStatusCompleted, true
	case constants.AlipayTradeStatusClosed:
		return constants.PaymentStatusFailed, true
	}
	return "", false
}

func buildSignContent(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		key = strings.TrimSpace(key)
		if key == "" || key == "sign" || strings.TrimSpace(value) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+params[key])
	}
	return strings.Join(parts, "&")
}

func buildSignContentFromForm(form url.Values) string {
	params := make(map[string]string, len(form))
	for key, values := range form {
		key = strings.TrimSpace(key)
		if key == "" || len(values) == 0 || values[0] == "" {
			continue
		}
		if strings.EqualFold(key, "sign") || strings.EqualFold(key, "sign_type") {
			continue
		}
		params[key] = values[0]
	}
	return buildSignContent(params)
}

func buildGatewayPayURL(gatewayURL string, params map[string]string) string {
	form := url.Values{}
	for key, value := range params {
		if value = strings.TrimSpace(value); value != "" {
			form.Set(key, value)
		}
	}
	parsed, err := url.Parse(gatewayURL)
	if err != nil {
		return gatewayURL + "?" + form.Encode()
	}
	parsed.RawQuery = form.Encode()
	return parsed.String()
}

// normalizePEM 兼容单行 \n 转义与无头尾的裸密钥。
func normalizePEM(raw, header string) string {
	normalized := strings.TrimSpace(strings.ReplaceAll(raw, "\\n", "\n"))
	if normalized != "" && !strings.Contains(normalized, "BEGIN") {
		normalized = "-----BEGIN " + header + "-----\n" + normalized + "\n-----END " + header + "-----"
	}
	return normalized
}

func parsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	normalized := normalizePEM(raw, "PRIVATE KEY")
	if normalized == "" {
		return nil, fmt.Errorf("%w: private key is empty", ErrSignGenerate)
	}
	if key, err := utils.LoadPrivateKey(normalized); err == nil {
		return key, nil
	}
	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, fmt.Errorf("%w: private key pem decode failed", ErrSignGenerate)
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key failed", ErrSignGenerate)
	}
	return key, nil
}

func parsePublicKey(raw string) (*rsa.PublicKey, error) {
	normalized := normalizePEM(raw, "PUBLIC KEY")
	if normalized == "" {
		return nil, fmt.Errorf("%w: public key is empty", ErrSignatureInvalid)
	}
	if key, err := utils.LoadPublicKey(normalized); err == nil {
		return key, nil
	}
	block, _ := pem.Decode([]byte(normalized))
	if block == nil {
		return nil, fmt.Errorf("%w: public key pem decode failed", ErrSignatureInvalid)
	}
	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key failed", ErrSignatureInvalid)
	}
	return key, nil
}

func (c *Config) normalize() {
	c.AppID = strings.TrimSpace(c.AppID)
	c.PrivateKey = strings.TrimSpace(c.PrivateKey)
	c.AlipayPublicKey = strings.TrimSpace(c.AlipayPublicKey)
	c.GatewayURL = strings.TrimSpace(c.GatewayURL)
	c.NotifyURL = strings.TrimSpace(c.NotifyURL)
	c.ReturnURL = strings.TrimSpace(c.ReturnURL)
	c.SignType = strings.ToUpper(strings.TrimSpace(c.SignType))
	if c.SignType == "" {
		c.SignType = signTypeRSA2
	}
	if c.GatewayURL == "" {
		c.GatewayURL = defaultGatewayURL
	}
}
