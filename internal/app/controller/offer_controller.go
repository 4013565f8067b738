package controller

import (
	"net/http"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/gin-gonic/gin"
)

type OfferController struct {
	offerService service.OfferService
}

func NewOfferController(offerService service.OfferService) *OfferController {
	return &OfferController{offerService: offerService}
}

// OfferRequest dates are RFC 3339; either bound may be omitted.
type OfferRequest struct {
	ProductID       uint       `json:"productId" form:"productId"`
	RestaurantID    uint       `json:"restaurantId" form:"restaurantId"`
	Title           string     `json:"title" form:"title"`
	DiscountPercent float64    `json:"discountPercent" form:"discountPercent"`
	StartDate       *time.Time `json:"startDate" form:"startDate"`
	EndDate         *time.Time `json:"endDate" form:"endDate"`
	IsPleasing      bool       `json:"isPleasing" form:"isPleasing"`
}

// POST /api/offer/create
func (ctrl *OfferController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req OfferRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}
	if req.ProductID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "productId is required")
		return
	}
	restaurantID := req.RestaurantID
	if restaurantID == 0 {
		restaurantID = actor.ID
	}

	offer, err := ctrl.offerService.Create(actor, req.ProductID, service.OfferInput{
		RestaurantID:    restaurantID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsPleasing:      req.IsPleasing,
	})
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "create offer")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Offer created", gin.H{"offer": offer})
}

// POST /api/offer/activate/:id
func (ctrl *OfferController) Activate(c *gin.Context) {
	runTransition(c, "offer", "activated", ctrl.offerService.Activate)
}

// POST /api/offer/deactivate/:id
func (ctrl *OfferController) Deactivate(c *gin.Context) {
	runTransition(c, "offer", "deactivated", ctrl.offerService.Deactivate)
}

// POST /api/offer/delete/:id
func (ctrl *OfferController) Delete(c *gin.Context) {
	runTransition(c, "offer", "deleted", ctrl.offerService.Delete)
}

// ListByProduct returns the live and paused offers of one of the caller's products
// GET /api/offer/product/:product_id
func (ctrl *OfferController) ListByProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	offers, err := ctrl.offerService.ListByProduct(actor, productID, actor.ID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch offers")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Offers fetched", gin.H{"offers": offers, "count": len(offers)})
}
