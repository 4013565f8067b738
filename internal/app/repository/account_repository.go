package repository

import (
	"fmt"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

// AccountRepository serves customers, restaurants, couriers and admins. Each
// kind lives in its own table; role picks the table.
type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	Create(holder model.AccountHolder) error
	FindByPhone(role model.UserRole, phone string) (model.AccountHolder, error)
	FindByID(role model.UserRole, id uint) (model.AccountHolder, error)
	SetStatus(role model.UserRole, id uint, status model.Status) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(holder model.AccountHolder) error {
	if err := r.db.Create(holder).Error; err != nil {
		logger.Error("Failed to create account in database", err, map[string]interface{}{
			"role":  holder.AccountRole(),
			"phone": holder.AccountData().Phone,
		})
		return err
	}

	logger.Debug("Account created in database", map[string]interface{}{
		"role":       holder.AccountRole(),
		"account_id": holder.AccountID(),
	})
	return nil
}

func (r *accountRepository) FindByPhone(role model.UserRole, phone string) (model.AccountHolder, error) {
	holder, ok := model.NewAccountHolder(role)
	if !ok {
		return nil, fmt.Errorf("unknown account role %q", role)
	}
	if err := r.db.Where("phone = ?", phone).First(holder).Error; err != nil {
		logFindError("Failed to find account by phone", err, map[string]interface{}{
			"role":  role,
			"phone": phone,
		})
		return nil, err
	}
	return holder, nil
}

func (r *accountRepository) FindByID(role model.UserRole, id uint) (model.AccountHolder, error) {
	holder, ok := model.NewAccountHolder(role)
	if !ok {
		return nil, fmt.Errorf("unknown account role %q", role)
	}
	if err := r.db.First(holder, id).Error; err != nil {
		logFindError("Failed to find account by ID", err, map[string]interface{}{
			"role":       role,
			"account_id": id,
		})
		return nil, err
	}
	return holder, nil
}

func (r *accountRepository) SetStatus(role model.UserRole, id uint, status model.Status) error {
	holder, ok := model.NewAccountHolder(role)
	if !ok {
		return fmt.Errorf("unknown account role %q", role)
	}
	return r.db.Model(holder).Where("id = ?", id).Updates(model.StatusColumns(status)).Error
}
