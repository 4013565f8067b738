package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/gin-gonic/gin"
)

type RateController struct {
	rateService service.RateService
}

func NewRateController(rateService service.RateService) *RateController {
	return &RateController{rateService: rateService}
}

type RateRequest struct {
	Value   int    `json:"value" binding:"required"`
	Comment string `json:"comment"`
}

// Rate creates or replaces the caller's rating of a product
// POST /api/rate/:product_id
func (ctrl *RateController) Rate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	rate, err := ctrl.rateService.Rate(actor.ID, productID, req.Value, req.Comment)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "rate product")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Rating saved", gin.H{"rate": rate})
}

// GET /api/rate/:product_id
func (ctrl *RateController) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	rates, err := ctrl.rateService.ListByProduct(productID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch ratings")
		return
	}
	summary, err := ctrl.rateService.Summary(productID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch ratings")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Ratings fetched", gin.H{
		"rates":   rates,
		"average": summary.Average,
		"count":   summary.Count,
	})
}
