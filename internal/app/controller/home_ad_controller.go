package controller

import (
	"net/http"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/gin-gonic/gin"
)

type HomeAdController struct {
	homeAdService service.HomeAdService
	uploader      *Uploader
}

func NewHomeAdController(homeAdService service.HomeAdService, uploader *Uploader) *HomeAdController {
	return &HomeAdController{
		homeAdService: homeAdService,
		uploader:      uploader,
	}
}

type HomeAdRequest struct {
	RestaurantID uint       `form:"restaurantId" binding:"required"`
	Title        string     `form:"title"`
	StartDate    *time.Time `form:"startDate"`
	EndDate      *time.Time `form:"endDate"`
}

// Create publishes a banner for a restaurant (admin only, multipart)
// POST /api/home-ad/create
func (ctrl *HomeAdController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req HomeAdRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, "home-ads")
	if !ok {
		return
	}

	ad, err := ctrl.homeAdService.Create(actor, service.HomeAdInput{
		RestaurantID: req.RestaurantID,
		Title:        req.Title,
		Photo:        photo,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "create home ad")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Home ad created", gin.H{"home_ad": ad})
}

// POST /api/home-ad/delete/:id
func (ctrl *HomeAdController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ad, err := ctrl.homeAdService.Delete(actor, id)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "delete home ad")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Home ad deleted", gin.H{"home_ad": ad})
}

// GET /api/home-ad/all
func (ctrl *HomeAdController) ListAll(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ads, err := ctrl.homeAdService.ListAll(actor)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch home ads")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Home ads fetched", gin.H{"home_ads": ads, "count": len(ads)})
}

// ListActive returns the banners currently on air
// GET /api/home-ad
func (ctrl *HomeAdController) ListActive(c *gin.Context) {
	ads, err := ctrl.homeAdService.ListActive()
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch home ads")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Home ads fetched", gin.H{"home_ads": ads, "count": len(ads)})
}
