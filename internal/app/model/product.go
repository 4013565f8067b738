package model

import (
	"time"
)

type Category struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	Name         string `gorm:"size:120;not null" json:"name"`
	ShortName    string `gorm:"size:60" json:"short_name"`
	Description  string `gorm:"type:text" json:"description"`
	Photo        string `json:"photo"`
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID              uint    `gorm:"primarykey" json:"id"`
	CategoryID      uint    `gorm:"not null;index" json:"category_id"`
	RestaurantID    uint    `gorm:"not null;index" json:"restaurant_id"`
	Name            string  `gorm:"size:160;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	SalePrice       float64 `gorm:"not null" json:"sale_price"`
	PrepTimeMinutes *int    `json:"prep_time_minutes"`
	Photo           string  `json:"photo"`
	ForSale         bool    `gorm:"not null;index" json:"for_sale"` // hide/unhide axis, independent of Status
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category      *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AddonLinks    []AddonPerProduct `gorm:"foreignKey:ProductID" json:"-"`
	Addons        []Addon           `gorm:"-" json:"addons,omitempty"`
	Offers        []Offer           `gorm:"foreignKey:ProductID" json:"offers,omitempty"`
	AverageRating float64           `gorm:"-" json:"average_rating"`
	RatingCount   int64             `gorm:"-" json:"rating_count"`
	IsFavorite    bool              `gorm:"-" json:"is_favorite"`
}

func (Product) TableName() string {
	return "products"
}

type Addon struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	Name         string  `gorm:"size:120;not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Addon) TableName() string {
	return "addons"
}

// AddonPerProduct attaches an addon to a product. Rows are reconciled as a set
// on product update and hard-removed when an addon is detached.
type AddonPerProduct struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ProductID uint `gorm:"not null;index:idx_addon_product,unique" json:"product_id"`
	AddonID   uint `gorm:"not null;index:idx_addon_product,unique" json:"addon_id"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Addon *Addon `gorm:"foreignKey:AddonID" json:"addon,omitempty"`
}

func (AddonPerProduct) TableName() string {
	return "addon_per_products"
}
