package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	restaurantService service.RestaurantService
}

func NewRestaurantController(restaurantService service.RestaurantService) *RestaurantController {
	return &RestaurantController{restaurantService: restaurantService}
}

// RestaurantListQuery: lat and lng together switch on the nearby search.
type RestaurantListQuery struct {
	City     string   `form:"city"`
	Search   string   `form:"search"`
	Lat      *float64 `form:"lat"`
	Lng      *float64 `form:"lng"`
	RadiusKM float64  `form:"radius_km"`
}

// GET /api/restaurant
func (ctrl *RestaurantController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var q RestaurantListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	restaurants, err := ctrl.restaurantService.List(service.RestaurantQuery{
		City:     q.City,
		Search:   q.Search,
		Lat:      q.Lat,
		Lng:      q.Lng,
		RadiusKM: q.RadiusKM,
	})
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch restaurants")
		return
	}

	log.Debug("Restaurants listed", map[string]interface{}{
		"city":   q.City,
		"nearby": q.Lat != nil && q.Lng != nil,
		"count":  len(restaurants),
	})

	apperrors.RespondOK(c, http.StatusOK, "Restaurants fetched", gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GET /api/restaurant/:id
func (ctrl *RestaurantController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := ctrl.restaurantService.Get(id)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch restaurant")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Restaurant fetched", gin.H{"restaurant": restaurant})
}

// POST /api/restaurant/verify/:id
func (ctrl *RestaurantController) Verify(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := ctrl.restaurantService.Verify(actor, id)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "verify restaurant")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Restaurant verified", gin.H{"restaurant": restaurant})
}
