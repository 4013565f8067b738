package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // account kind carried in the JWT role claim

const (
	RoleCustomer   UserRole = "customer"
	RoleRestaurant UserRole = "restaurant"
	RoleDelivery   UserRole = "delivery"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleAdmin:
		return true
	}
	return false
}

// Account is the login surface shared by the four account kinds.
// Status is pending until the phone number is verified by OTP.
type Account struct {
	Name         string `gorm:"size:120;not null" json:"name"`
	Phone        string `gorm:"size:30;uniqueIndex;not null" json:"phone"`
	Email        string `gorm:"size:160" json:"email,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`
	Lifecycle
}

type Customer struct {
	ID uint `gorm:"primarykey" json:"id"`
	Account
	Photo     string         `json:"photo,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

type DeliveryMan struct {
	ID uint `gorm:"primarykey" json:"id"`
	Account
	City        string         `gorm:"size:80;index" json:"city"`
	VehicleType string         `gorm:"size:40" json:"vehicle_type"`
	IDDocument  string         `json:"id_document,omitempty"` // uploaded PDF
	IsVerified  bool           `json:"is_verified"`
	IsAvailable bool           `json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DeliveryMan) TableName() string {
	return "delivery_men"
}

type Admin struct {
	ID uint `gorm:"primarykey" json:"id"`
	Account
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

// AccountHolder is implemented by the four account tables so auth flows can
// stay kind-agnostic.
type AccountHolder interface {
	AccountID() uint
	AccountData() *Account
	AccountRole() UserRole
}

func (c *Customer) AccountID() uint       { return c.ID }
func (c *Customer) AccountData() *Account { return &c.Account }
func (c *Customer) AccountRole() UserRole { return RoleCustomer }

func (d *DeliveryMan) AccountID() uint       { return d.ID }
func (d *DeliveryMan) AccountData() *Account { return &d.Account }
func (d *DeliveryMan) AccountRole() UserRole { return RoleDelivery }

func (a *Admin) AccountID() uint       { return a.ID }
func (a *Admin) AccountData() *Account { return &a.Account }
func (a *Admin) AccountRole() UserRole { return RoleAdmin }

func (r *Restaurant) AccountID() uint       { return r.ID }
func (r *Restaurant) AccountData() *Account { return &r.Account }
func (r *Restaurant) AccountRole() UserRole { return RoleRestaurant }

// NewAccountHolder returns an empty row of the table backing role.
func NewAccountHolder(role UserRole) (AccountHolder, bool) {
	switch role {
	case RoleCustomer:
		return &Customer{}, true
	case RoleRestaurant:
		return &Restaurant{}, true
	case RoleDelivery:
		return &DeliveryMan{}, true
	case RoleAdmin:
		return &Admin{}, true
	}
	return nil, false
}
