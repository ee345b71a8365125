package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户 Token 类型
const (
	UserTokenTypeAccess  = "access"
	UserTokenTypeRefresh = "refresh"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	settingService *SettingService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, settingService *SettingService) *UserAuthService {
	return &UserAuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		settingService: settingService,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	TokenType    string `json:"typ"`
	jwt.RegisteredClaims
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// TokenPair 登录签发的 Token 组合
type TokenPair struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// ProfileInput 资料更新参数（仅允许修改的字段）
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
}

// MembershipView 会员信息视图
type MembershipView struct {
	Membership *models.UserMembership `json:"membership,omitempty"`
	IsValid    bool                   `json:"is_valid"`
	Message    string                 `json:"message,omitempty"`
}

func (s *UserAuthService) marketplace() MarketplaceSetting {
	setting, err := s.settingService.GetMarketplaceSetting(s.cfg.Marketplace)
	if err != nil {
		logger.Warnw("marketplace_setting_load_failed", "error", err)
	}
	return setting
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, tokenType string) (string, time.Time, error) {
	hours := s.cfg.UserJWT.ExpireHours
	if tokenType == UserTokenTypeRefresh {
		hours = s.cfg.UserJWT.RefreshExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		TokenType:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Register 用户注册，仅允许校园邮箱
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(username) > 150 {
		return nil, ErrUsernameRequired
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(email, s.marketplace().AllowedEmailDomain) {
		return nil, ErrEmailDomainNotAllowed
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}
	exists, err = s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		AITEmail:     email,
		PasswordHash: string(hash),
		IsVerified:   true,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名密码登录，签发 access/refresh Token
func (s *UserAuthService) Login(username, password string) (*models.User, *TokenPair, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrUserDisabled
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, pair, nil
}

// Refresh 使用 refresh Token 换取新的 access Token
func (s *UserAuthService) Refresh(refreshToken string) (string, time.Time, error) {
	claims, err := s.ParseUserJWT(strings.TrimSpace(refreshToken))
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.TokenType != UserTokenTypeRefresh {
		return "", time.Time{}, ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", time.Time{}, err
	}
	if user == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	if !user.IsActive {
		return "", time.Time{}, ErrUserDisabled
	}
	if claims.TokenVersion != user.TokenVersion {
		return "", time.Time{}, ErrTokenRevoked
	}
	if user.TokenInvalidBefore != nil && claims.IssuedAt != nil && claims.IssuedAt.Time.Unix() < user.TokenInvalidBefore.Unix() {
		return "", time.Time{}, ErrTokenRevoked
	}
	return s.GenerateUserJWT(user, UserTokenTypeAccess)
}

func (s *UserAuthService) issueTokenPair(user *models.User) (*TokenPair, error) {
	access, expiresAt, err := s.GenerateUserJWT(user, UserTokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExpiresAt, err := s.GenerateUserJWT(user, UserTokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:           access,
		Refresh:          refresh,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新资料，用户名与邮箱只读
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if len(phone) > 20 {
			return nil, ErrInvalidInput
		}
		user.Phone = phone
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 登录态修改密码，并吊销已签发的 Token
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hash)
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// IsMember 用户当前是否持有有效会员
func (s *UserAuthService) IsMember(userID uint) (bool, error) {
	membership, err := s.userRepo.GetMembership(userID)
	if err != nil {
		return false, err
	}
	return membership.IsValid(time.Now()), nil
}

// GetMembership 获取会员信息
func (s *UserAuthService) GetMembership(userID uint) (*MembershipView, error) {
	membership, err := s.userRepo.GetMembership(userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return &MembershipView{IsValid: false, Message: "No active membership"}, nil
	}
	return &MembershipView{Membership: membership, IsValid: membership.IsValid(time.Now())}, nil
}

// PurchaseMembership 购买或续期会员，有效期内顺延，否则从当前时间起算
func (s *UserAuthService) PurchaseMembership(userID uint, months int) (*MembershipView, error) {
	setting := s.marketplace()
	if months == 0 {
		months = 1
	}
	if months < setting.MembershipMinMonths || months > setting.MembershipMaxMonths {
		return nil, ErrMembershipMonthsInvalid
	}
	days := months * setting.MembershipDaysPerMonth
	price := models.NewMoneyFromDecimal(decimal.NewFromFloat(setting.MembershipMonthlyPrice).Mul(decimal.NewFromInt(int64(months))))

	var result *models.UserMembership
	err := s.userRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		user, err := repo.GetByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		membership, err := repo.GetMembershipForUpdate(userID)
		if err != nil {
			return err
		}
		now := time.Now()
		duration := time.Duration(days) * 24 * time.Hour
		if membership == nil {
			membership = &models.UserMembership{
				UserID:    userID,
				StartDate: now,
				EndDate:   now.Add(duration),
			}
		} else if membership.IsValid(now) {
			membership.EndDate = membership.EndDate.Add(duration)
		} else {
			membership.StartDate = now
			membership.EndDate = now.Add(duration)
		}
		membership.IsActive = true
		membership.Price = price
		if err := repo.SaveMembership(membership); err != nil {
			return err
		}
		result = membership
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MembershipView{Membership: result, IsValid: result.IsValid(time.Now())}, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(normalized)
	if err != nil || parsed.Address != normalized {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
