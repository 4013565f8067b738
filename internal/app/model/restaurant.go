package model

import (
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID uint `gorm:"primarykey" json:"id"`
	Account
	City        string   `gorm:"size:80;index" json:"city"`
	Address     string   `gorm:"type:text" json:"address"`
	Latitude    *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   *float64 `gorm:"type:decimal(11,8)" json:"longitude"`
	Description string   `gorm:"type:text" json:"description"`
	Photo       string   `json:"photo,omitempty"`
	LicenseFile string   `json:"license_file,omitempty"` // uploaded PDF

	IsVerified bool       `gorm:"index" json:"is_verified"` // set by an admin
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// derived on read
	AverageRating float64  `gorm:"-" json:"average_rating"`
	RatingCount   int64    `gorm:"-" json:"rating_count"`
	DistanceKM    *float64 `gorm:"-" json:"distance_km,omitempty"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

type HomeAd struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Title        string     `gorm:"size:160;not null" json:"title"`
	Photo        string     `json:"photo"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}

func (HomeAd) TableName() string {
	return "home_ads"
}
