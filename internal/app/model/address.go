package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	Label      string         `gorm:"size:100;not null" json:"label"` // e.g. "home", "work"
	City       string         `gorm:"size:80;not null" json:"city"`
	Street     string         `gorm:"type:text;not null" json:"street"`
	Details    string         `gorm:"type:text" json:"details"`
	Latitude   *float64       `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude  *float64       `gorm:"type:decimal(11,8)" json:"longitude"`
	IsDefault  bool           `json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
	OTPPurposeReset    OTPPurpose = "reset_password"
)

type OTP struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Phone     string     `gorm:"size:30;not null;index" json:"phone"`
	Role      UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Purpose   OTPPurpose `gorm:"type:varchar(30);not null" json:"purpose"`
	Code      string     `gorm:"size:12;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (OTP) TableName() string {
	return "otps"
}

type Favorite struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CustomerID uint `gorm:"not null;index:idx_favorite_customer_product,unique" json:"customer_id"`
	ProductID  uint `gorm:"not null;index:idx_favorite_customer_product,unique" json:"product_id"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Rate struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	CustomerID uint   `gorm:"not null;index:idx_rate_customer_product,unique" json:"customer_id"`
	ProductID  uint   `gorm:"not null;index:idx_rate_customer_product,unique" json:"product_id"`
	Value      int    `gorm:"not null" json:"value"` // 1..5
	Comment    string `gorm:"type:text" json:"comment"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rate) TableName() string {
	return "rates"
}
