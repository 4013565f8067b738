package repository

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type OTPRepository interface {
	WithTx(tx *gorm.DB) OTPRepository
	Create(otp *model.OTP) error
	FindLatestOpen(phone string, role model.UserRole, purpose model.OTPPurpose) (*model.OTP, error)
	MarkUsed(id uint, at time.Time) error
	InvalidateOpen(phone string, role model.UserRole, purpose model.OTPPurpose, at time.Time) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) WithTx(tx *gorm.DB) OTPRepository {
	return &otpRepository{db: tx}
}

func (r *otpRepository) Create(otp *model.OTP) error {
	if err := r.db.Create(otp).Error; err != nil {
		logger.Error("Failed to store OTP", err, map[string]interface{}{
			"phone":   otp.Phone,
			"purpose": otp.Purpose,
		})
		return err
	}
	return nil
}

// FindLatestOpen returns the newest unused code, expired or not.
func (r *otpRepository) FindLatestOpen(phone string, role model.UserRole, purpose model.OTPPurpose) (*model.OTP, error) {
	var otp model.OTP
	err := r.db.
		Where("phone = ? AND role = ? AND purpose = ? AND used_at IS NULL", phone, role, purpose).
		Order("created_at DESC, id DESC").
		First(&otp).Error
	if err != nil {
		logFindError("Failed to find open OTP", err, map[string]interface{}{
			"phone":   phone,
			"purpose": purpose,
		})
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(id uint, at time.Time) error {
	return r.db.Model(&model.OTP{}).Where("id = ?", id).Update("used_at", at).Error
}

// InvalidateOpen burns every outstanding code so only the newest one verifies.
func (r *otpRepository) InvalidateOpen(phone string, role model.UserRole, purpose model.OTPPurpose, at time.Time) error {
	return r.db.Model(&model.OTP{}).
		Where("phone = ? AND role = ? AND purpose = ? AND used_at IS NULL", phone, role, purpose).
		Update("used_at", at).Error
}
