package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/gin-gonic/gin"
)

type AddonController struct {
	addonService service.AddonService
}

func NewAddonController(addonService service.AddonService) *AddonController {
	return &AddonController{addonService: addonService}
}

type AddonRequest struct {
	RestaurantID uint    `json:"restaurantId" form:"restaurantId"`
	Name         string  `json:"name" form:"name"`
	Price        float64 `json:"price" form:"price"`
	Status       string  `json:"status" form:"status"`
}

func (r AddonRequest) input(actor service.Actor) service.AddonInput {
	restaurantID := r.RestaurantID
	if restaurantID == 0 {
		restaurantID = actor.ID
	}
	return service.AddonInput{
		RestaurantID: restaurantID,
		Name:         r.Name,
		Price:        r.Price,
		Status:       model.Status(r.Status),
	}
}

// POST /api/addon/create
func (ctrl *AddonController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req AddonRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	addon, err := ctrl.addonService.Create(actor, req.input(actor))
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "create addon")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Addon created", gin.H{"addon": addon})
}

// POST /api/addon/update/:id
func (ctrl *AddonController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddonRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	addon, err := ctrl.addonService.Update(actor, id, req.input(actor))
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "update addon")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Addon updated", gin.H{"addon": addon})
}

// POST /api/addon/activate/:id
func (ctrl *AddonController) Activate(c *gin.Context) {
	runTransition(c, "addon", "activated", ctrl.addonService.Activate)
}

// POST /api/addon/deactivate/:id
func (ctrl *AddonController) Deactivate(c *gin.Context) {
	runTransition(c, "addon", "deactivated", ctrl.addonService.Deactivate)
}

// POST /api/addon/delete/:id
func (ctrl *AddonController) Delete(c *gin.Context) {
	runTransition(c, "addon", "deleted", ctrl.addonService.Delete)
}

// GET /api/addon/mine
func (ctrl *AddonController) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	addons, err := ctrl.addonService.ListMine(actor)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch addons")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Addons fetched", gin.H{"addons": addons, "count": len(addons)})
}

// GET /api/addon/:res_id
func (ctrl *AddonController) ListPublic(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	addons, err := ctrl.addonService.ListPublic(restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch addons")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Addons fetched", gin.H{"addons": addons, "count": len(addons)})
}
