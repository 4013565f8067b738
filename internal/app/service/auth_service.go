package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrAccountExists      = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrOTPInvalid         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrOTPCooldown        = errors.New("verification code requested too often")
	ErrOTPDelivery        = errors.New("failed to deliver verification code")
	ErrInvalidToken       = errors.New("invalid token")
)

const minPasswordLen = 8

// TokenStore revokes access tokens before they expire.
type TokenStore interface {
	BlacklistToken(ctx context.Context, token string, expiry time.Duration) error
}

// OTPThrottle limits how often a code can be re-sent to one phone.
type OTPThrottle interface {
	AcquireOTPCooldown(ctx context.Context, phone, purpose string, cooldown time.Duration) (bool, error)
}

type AuthSettings struct {
	JWTSecret     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	OTP           config.OTPConfig
}

type RegisterInput struct {
	Role     model.UserRole
	Name     string
	Phone    string
	Email    string
	Password string

	// restaurant
	City        string
	Address     string
	Description string
	Latitude    *float64
	Longitude   *float64

	// delivery
	VehicleType string

	Photo    string
	Document string // restaurant license or courier id
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (model.AccountHolder, error)
	VerifyOTP(ctx context.Context, role model.UserRole, phone, code string) (model.AccountHolder, error)
	ResendOTP(ctx context.Context, role model.UserRole, phone string) error
	Login(ctx context.Context, role model.UserRole, phone, password string) (model.AccountHolder, *util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	GetAccount(role model.UserRole, id uint) (model.AccountHolder, error)
}

type authService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	otpRepo     repository.OTPRepository
	sms         util.SMSSender
	tokens      TokenStore
	throttle    OTPThrottle
	settings    AuthSettings
	now         Clock
}

func NewAuthService(
	db *gorm.DB,
	accountRepo repository.AccountRepository,
	otpRepo repository.OTPRepository,
	sms util.SMSSender,
	tokens TokenStore,
	throttle OTPThrottle,
	settings AuthSettings,
) AuthService {
	return &authService{
		db:          db,
		accountRepo: accountRepo,
		otpRepo:     otpRepo,
		sms:         sms,
		tokens:      tokens,
		throttle:    throttle,
		settings:    settings,
		now:         time.Now,
	}
}

func newAccount(input RegisterInput) (model.AccountHolder, error) {
	switch input.Role {
	case model.RoleCustomer:
		return &model.Customer{Photo: input.Photo}, nil
	case model.RoleRestaurant:
		if strings.TrimSpace(input.City) == "" {
			return nil, invalidf("city is required")
		}
		return &model.Restaurant{
			City:        input.City,
			Address:     input.Address,
			Description: input.Description,
			Latitude:    input.Latitude,
			Longitude:   input.Longitude,
			Photo:       input.Photo,
			LicenseFile: input.Document,
		}, nil
	case model.RoleDelivery:
		return &model.DeliveryMan{
			City:        input.City,
			VehicleType: input.VehicleType,
			IDDocument:  input.Document,
		}, nil
	}
	return nil, invalidf("accounts of role %q cannot register", input.Role)
}

// Register creates a pending account and texts it a verification code. A
// gateway failure does not undo the registration; the caller can resend.
func (s *authService) Register(ctx context.Context, input RegisterInput) (model.AccountHolder, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" || input.Phone == "" {
		return nil, invalidf("name and phone are required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, invalidf("password must be at least %d characters", minPasswordLen)
	}

	holder, err := newAccount(input)
	if err != nil {
		return nil, err
	}

	logger.Info("Attempting account registration", map[string]interface{}{
		"role":  input.Role,
		"phone": input.Phone,
	})

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, err
	}
	account := holder.AccountData()
	account.Name = input.Name
	account.Phone = input.Phone
	account.Email = input.Email
	account.PasswordHash = hash
	account.SetStatus(model.StatusPending)

	var code string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)
		_, err := accounts.FindByPhone(input.Role, input.Phone)
		if err == nil {
			return ErrAccountExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := accounts.Create(holder); err != nil {
			return err
		}
		code, err = s.issueOTP(s.otpRepo.WithTx(tx), input.Phone, input.Role)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			logger.Warn("Registration failed: phone already exists", map[string]interface{}{
				"role":  input.Role,
				"phone": input.Phone,
			})
		}
		return nil, err
	}

	if err := s.sms.SendOTP(ctx, input.Phone, code); err != nil {
		logger.Error("Failed to send registration code", err, map[string]interface{}{
			"phone": input.Phone,
		})
	}

	logger.Info("Account registered", map[string]interface{}{
		"role":       input.Role,
		"account_id": holder.AccountID(),
	})
	return holder, nil
}

// issueOTP burns any outstanding code and stores a fresh one.
func (s *authService) issueOTP(repo repository.OTPRepository, phone string, role model.UserRole) (string, error) {
	code, err := util.GenerateOTP(s.settings.OTP.Length)
	if err != nil {
		return "", err
	}
	now := s.now()
	if err := repo.InvalidateOpen(phone, role, model.OTPPurposeRegister, now); err != nil {
		return "", err
	}
	otp := &model.OTP{
		Phone:     phone,
		Role:      role,
		Purpose:   model.OTPPurposeRegister,
		Code:      code,
		ExpiresAt: now.Add(s.settings.OTP.TTL),
	}
	if err := repo.Create(otp); err != nil {
		return "", err
	}
	return code, nil
}

func (s *authService) findAccount(repo repository.AccountRepository, role model.UserRole, phone string) (model.AccountHolder, error) {
	if !role.Valid() {
		return nil, invalidf("unknown account role %q", role)
	}
	holder, err := repo.FindByPhone(role, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return holder, nil
}

func (s *authService) VerifyOTP(ctx context.Context, role model.UserRole, phone, code string) (model.AccountHolder, error) {
	var holder model.AccountHolder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)
		otps := s.otpRepo.WithTx(tx)

		var err error
		holder, err = s.findAccount(accounts, role, phone)
		if err != nil {
			return err
		}
		if holder.AccountData().Status != model.StatusPending {
			return ErrAlreadyVerified
		}

		otp, err := otps.FindLatestOpen(phone, role, model.OTPPurposeRegister)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOTPInvalid
			}
			return err
		}
		now := s.now()
		if now.After(otp.ExpiresAt) {
			return ErrOTPExpired
		}
		if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
			return ErrOTPInvalid
		}

		if err := otps.MarkUsed(otp.ID, now); err != nil {
			return err
		}
		return accounts.SetStatus(role, holder.AccountID(), model.StatusActive)
	})
	if err != nil {
		logger.Warn("Phone verification failed", map[string]interface{}{
			"role":  role,
			"phone": phone,
			"error": err.Error(),
		})
		return nil, err
	}

	holder.AccountData().SetStatus(model.StatusActive)
	logger.Info("Phone verified", map[string]interface{}{
		"role":       role,
		"account_id": holder.AccountID(),
	})
	return holder, nil
}

// ResendOTP fails loudly when the gateway rejects the message, unlike Register.
func (s *authService) ResendOTP(ctx context.Context, role model.UserRole, phone string) error {
	holder, err := s.findAccount(s.accountRepo, role, phone)
	if err != nil {
		return err
	}
	if holder.AccountData().Status != model.StatusPending {
		return ErrAlreadyVerified
	}

	ok, err := s.throttle.AcquireOTPCooldown(ctx, phone, string(model.OTPPurposeRegister), s.settings.OTP.ResendCooldown)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPCooldown
	}

	var code string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		code, err = s.issueOTP(s.otpRepo.WithTx(tx), phone, role)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.sms.SendOTP(ctx, phone, code); err != nil {
		logger.Error("Failed to resend verification code", err, map[string]interface{}{
			"phone": phone,
		})
		return fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, role model.UserRole, phone, password string) (model.AccountHolder, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"role":  role,
		"phone": phone,
	})

	holder, err := s.findAccount(s.accountRepo, role, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	account := holder.AccountData()
	if !util.VerifyPassword(account.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"role":       role,
			"account_id": holder.AccountID(),
		})
		return nil, nil, ErrInvalidCredentials
	}
	switch account.Status {
	case model.StatusActive:
	case model.StatusPending:
		return nil, nil, ErrAccountNotVerified
	default:
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		holder.AccountID(),
		account.Name,
		string(role),
		s.settings.JWTSecret,
		s.settings.AccessExpiry,
		s.settings.RefreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"account_id": holder.AccountID(),
		})
		return nil, nil, err
	}

	logger.Info("Logged in", map[string]interface{}{
		"role":       role,
		"account_id": holder.AccountID(),
	})
	return holder, tokens, nil
}

// Logout revokes the access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.settings.JWTSecret)
	if err != nil {
		return ErrInvalidToken
	}
	return s.tokens.BlacklistToken(ctx, token, claims.RemainingLifetime(s.now()))
}

func (s *authService) GetAccount(role model.UserRole, id uint) (model.AccountHolder, error) {
	if !role.Valid() {
		return nil, ErrAccountNotFound
	}
	holder, err := s.accountRepo.FindByID(role, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return holder, nil
}
