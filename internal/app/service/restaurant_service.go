package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

const defaultNearbyRadiusKM = 5.0

type RestaurantQuery struct {
	City     string
	Search   string
	Lat      *float64
	Lng      *float64
	RadiusKM float64
}

type RestaurantService interface {
	List(query RestaurantQuery) ([]model.Restaurant, error)
	Get(id uint) (*model.Restaurant, error)
	Verify(actor Actor, id uint) (*model.Restaurant, error)
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	now            Clock
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo, now: time.Now}
}

// List returns active restaurants. With a position it narrows to a bounding
// box, then to the exact radius, nearest first.
func (s *restaurantService) List(query RestaurantQuery) ([]model.Restaurant, error) {
	filter := repository.RestaurantFilter{
		City:   strings.TrimSpace(query.City),
		Search: strings.TrimSpace(query.Search),
	}

	nearby := query.Lat != nil && query.Lng != nil
	radius := query.RadiusKM
	if nearby {
		if radius <= 0 {
			radius = defaultNearbyRadiusKM
		}
		minLat, maxLat, minLng, maxLng := util.BoundingBox(*query.Lat, *query.Lng, radius)
		filter.MinLat, filter.MaxLat = &minLat, &maxLat
		filter.MinLng, filter.MaxLng = &minLng, &maxLng
	}

	restaurants, err := s.restaurantRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	if nearby {
		within := restaurants[:0]
		for _, r := range restaurants {
			if r.Latitude == nil || r.Longitude == nil {
				continue
			}
			d := util.DistanceKM(*query.Lat, *query.Lng, *r.Latitude, *r.Longitude)
			if d > radius {
				continue
			}
			r.DistanceKM = &d
			within = append(within, r)
		}
		sort.SliceStable(within, func(i, j int) bool {
			return *within[i].DistanceKM < *within[j].DistanceKM
		})
		restaurants = within
	}

	ids := make([]uint, len(restaurants))
	for i := range restaurants {
		ids[i] = restaurants[i].ID
	}
	summary, err := s.restaurantRepo.RatingSummary(ids)
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		if agg, ok := summary[restaurants[i].ID]; ok {
			restaurants[i].AverageRating = agg.Average
			restaurants[i].RatingCount = agg.Count
		}
	}
	return restaurants, nil
}

func (s *restaurantService) Get(id uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (s *restaurantService) Verify(actor Actor, id uint) (*model.Restaurant, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	now := s.now()
	if err := s.restaurantRepo.SetVerified(restaurant.ID, now); err != nil {
		return nil, err
	}
	restaurant.IsVerified = true
	restaurant.VerifiedAt = &now

	logger.Info("Restaurant verified", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"admin_id":      actor.ID,
	})
	return restaurant, nil
}
