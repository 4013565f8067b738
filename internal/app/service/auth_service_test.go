package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/db"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

type fakeSMS struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (f *fakeSMS) SendOTP(_ context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[phone] = code
	return nil
}

func (f *fakeSMS) last(phone string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[phone]
}

type fakeThrottle struct {
	claimed map[string]bool
}

func (f *fakeThrottle) AcquireOTPCooldown(_ context.Context, phone, purpose string, _ time.Duration) (bool, error) {
	key := purpose + ":" + phone
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

type fakeTokenStore struct {
	revoked map[string]time.Duration
}

func (f *fakeTokenStore) BlacklistToken(_ context.Context, token string, expiry time.Duration) error {
	f.revoked[token] = expiry
	return nil
}

type authFixture struct {
	service  *authService
	sms      *fakeSMS
	throttle *fakeThrottle
	tokens   *fakeTokenStore
	otpRepo  repository.OTPRepository
}

func setupAuthServiceTest(t *testing.T) *authFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := &authFixture{
		sms:      &fakeSMS{},
		throttle: &fakeThrottle{claimed: map[string]bool{}},
		tokens:   &fakeTokenStore{revoked: map[string]time.Duration{}},
		otpRepo:  repository.NewOTPRepository(testDB),
	}
	svc := NewAuthService(
		testDB,
		repository.NewAccountRepository(testDB),
		f.otpRepo,
		f.sms,
		f.tokens,
		f.throttle,
		AuthSettings{
			JWTSecret:     testJWTSecret,
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
			OTP:           config.OTPConfig{Length: 6, TTL: 5 * time.Minute, ResendCooldown: time.Minute},
		},
	)
	f.service = svc.(*authService)
	return f
}

func customerInput(phone string) RegisterInput {
	return RegisterInput{Role: model.RoleCustomer, Name: "Sam", Phone: phone, Password: "password123"}
}

func TestAuthService_RegisterVerifyLogin(t *testing.T) {
	f := setupAuthServiceTest(t)
	ctx := context.Background()

	holder, err := f.service.Register(ctx, customerInput("0555000111"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, holder.AccountData().Status)
	code := f.sms.last("0555000111")
	require.Len(t, code, 6)

	_, _, err = f.service.Login(ctx, model.RoleCustomer, "0555000111", "password123")
	assert.ErrorIs(t, err, ErrAccountNotVerified)

	_, err = f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000111", "000000x")
	assert.ErrorIs(t, err, ErrOTPInvalid)

	verified, err := f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000111", code)
	require.NoError(t, err)
	assert.True(t, verified.AccountData().IsActive)

	_, err = f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000111", code)
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	_, _, err = f.service.Login(ctx, model.RoleCustomer, "0555000111", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, tokens, err := f.service.Login(ctx, model.RoleCustomer, "0555000111", "password123")
	require.NoError(t, err)
	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, account.AccountID(), claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "Sam", claims.Name)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, customerInput("0555000222"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"duplicate phone", customerInput("0555000222"), ErrAccountExists},
		{"short password", RegisterInput{Role: model.RoleCustomer, Name: "A", Phone: "1", Password: "short"}, ErrInvalidInput},
		{"missing name", RegisterInput{Role: model.RoleCustomer, Phone: "1", Password: "password123"}, ErrInvalidInput},
		{"admin cannot register", RegisterInput{Role: model.RoleAdmin, Name: "A", Phone: "1", Password: "password123"}, ErrInvalidInput},
		{"restaurant needs a city", RegisterInput{Role: model.RoleRestaurant, Name: "A", Phone: "1", Password: "password123"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// the same phone may hold a different account kind
	_, err = f.service.Register(ctx, RegisterInput{Role: model.RoleRestaurant, Name: "Pizza", Phone: "0555000222", Password: "password123", City: "Damascus"})
	require.NoError(t, err)
}

func TestAuthService_RegisterSurvivesGatewayFailure(t *testing.T) {
	f := setupAuthServiceTest(t)
	f.sms.err = errors.New("gateway down")

	holder, err := f.service.Register(context.Background(), customerInput("0555000333"))
	require.NoError(t, err)
	assert.NotZero(t, holder.AccountID())

	// resend is strict about delivery
	err = f.service.ResendOTP(context.Background(), model.RoleCustomer, "0555000333")
	assert.ErrorIs(t, err, ErrOTPDelivery)
}

func TestAuthService_ResendOTP(t *testing.T) {
	f := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, customerInput("0555000444"))
	require.NoError(t, err)
	first := f.sms.last("0555000444")

	require.NoError(t, f.service.ResendOTP(ctx, model.RoleCustomer, "0555000444"))
	second := f.sms.last("0555000444")

	err = f.service.ResendOTP(ctx, model.RoleCustomer, "0555000444")
	assert.ErrorIs(t, err, ErrOTPCooldown)

	// only the newest code verifies
	if first != second {
		_, err = f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000444", first)
		assert.ErrorIs(t, err, ErrOTPInvalid)
	}
	_, err = f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000444", second)
	require.NoError(t, err)

	err = f.service.ResendOTP(ctx, model.RoleCustomer, "0555999999")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAuthService_VerifyExpiredCode(t *testing.T) {
	f := setupAuthServiceTest(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, customerInput("0555000555"))
	require.NoError(t, err)
	code := f.sms.last("0555000555")

	f.service.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	_, err = f.service.VerifyOTP(ctx, model.RoleCustomer, "0555000555", code)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestAuthService_Logout(t *testing.T) {
	f := setupAuthServiceTest(t)
	ctx := context.Background()

	tokens, err := util.GenerateTokenPair(1, "Sam", "customer", testJWTSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, tokens.AccessToken))
	expiry, ok := f.tokens.revoked[tokens.AccessToken]
	require.True(t, ok)
	assert.InDelta(t, (15 * time.Minute).Seconds(), expiry.Seconds(), 5)

	err = f.service.Logout(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
