package model

import "time"

type Combo struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	Name         string  `gorm:"size:160;not null" json:"name"`
	Description  string  `gorm:"size:160" json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Photo        string  `json:"photo"`
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items,omitempty"`
}

func (Combo) TableName() string {
	return "combos"
}

// ComboItem mirrors its combo's status. It is the only catalog row that is ever
// hard-deleted: when a combo update drops a product.
type ComboItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ComboID   uint `gorm:"not null;index:idx_combo_product,unique" json:"combo_id"`
	ProductID uint `gorm:"not null;index:idx_combo_product,unique;index" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	Lifecycle
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (ComboItem) TableName() string {
	return "combo_items"
}

type Offer struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	ProductID       uint       `gorm:"not null;index" json:"product_id"`
	RestaurantID    uint       `gorm:"not null;index" json:"restaurant_id"`
	Title           string     `gorm:"size:160;not null" json:"title"`
	DiscountPercent float64    `gorm:"not null" json:"discount_percent"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsPleasing      bool       `gorm:"index" json:"is_pleasing"` // promotional class shown apart from plain discounts
	Lifecycle
	Audit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

// EffectiveAt reports whether the offer is active and its window contains t.
// Either bound may be open.
func (o *Offer) EffectiveAt(t time.Time) bool {
	if !o.Status.IsActive() {
		return false
	}
	if o.StartDate != nil && t.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && t.After(*o.EndDate) {
		return false
	}
	return true
}

// DiscountedPrice applies the offer to price.
func (o *Offer) DiscountedPrice(price float64) float64 {
	return price * (100 - o.DiscountPercent) / 100
}
