package service

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
)

// Actor is the authenticated caller, taken from the JWT claims.
type Actor struct {
	ID   uint
	Role model.UserRole
	Name string
}

// authorizeRestaurant enforces that the caller is the restaurant owning the resource.
func (a Actor) authorizeRestaurant(restaurantID uint) error {
	if a.Role != model.RoleRestaurant {
		return ErrNotRestaurant
	}
	if a.ID != restaurantID {
		return ErrUnauthorized
	}
	return nil
}

// Clock is swapped in tests.
type Clock func() time.Time
