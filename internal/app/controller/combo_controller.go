package controller

import (
	"encoding/json"
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

const comboPhotoFolder = "combos"

type ComboController struct {
	comboService service.ComboService
	uploader     *Uploader
}

func NewComboController(comboService service.ComboService, uploader *Uploader) *ComboController {
	return &ComboController{
		comboService: comboService,
		uploader:     uploader,
	}
}

// ComboRequest carries addedProducts as raw JSON; multipart clients send the
// same array as a string field.
type ComboRequest struct {
	RestaurantID  uint            `json:"restaurantId" form:"restaurantId"`
	Name          string          `json:"name" form:"name"`
	Description   string          `json:"description" form:"description"`
	Price         float64         `json:"price" form:"price"`
	Status        string          `json:"status" form:"status"`
	AddedProducts json.RawMessage `json:"addedProducts" form:"-"`
}

func (ctrl *ComboController) bind(c *gin.Context, actor service.Actor) (*service.ComboInput, bool) {
	var req ComboRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid combo request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return nil, false
	}
	raw := []byte(req.AddedProducts)
	if isFormRequest(c) {
		raw = []byte(c.PostForm("addedProducts"))
	}

	lines, err := service.NormalizeProductsPayload(raw)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "parse combo products")
		return nil, false
	}

	restaurantID := req.RestaurantID
	if restaurantID == 0 {
		restaurantID = actor.ID
	}
	return &service.ComboInput{
		RestaurantID:  restaurantID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Status:        model.Status(req.Status),
		AddedProducts: lines,
	}, true
}

// Create builds a combo from products of the caller's menu
// POST /api/combo/create
func (ctrl *ComboController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	input, ok := ctrl.bind(c, actor)
	if !ok {
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, comboPhotoFolder)
	if !ok {
		return
	}
	input.Photo = photo

	combo, err := ctrl.comboService.Create(actor, *input)
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "create combo")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Combo created", gin.H{"combo": combo})
}

// Update reconciles the item list against addedProducts
// POST /api/combo/update/:id
func (ctrl *ComboController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := ctrl.bind(c, actor)
	if !ok {
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, comboPhotoFolder)
	if !ok {
		return
	}
	input.Photo = photo

	combo, replaced, err := ctrl.comboService.Update(actor, id, *input)
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "update combo")
		return
	}
	ctrl.uploader.Discard(c, replaced)

	apperrors.RespondOK(c, http.StatusOK, "Combo updated", gin.H{"combo": combo})
}

// POST /api/combo/activate/:id
func (ctrl *ComboController) Activate(c *gin.Context) {
	runTransition(c, "combo", "activated", ctrl.comboService.Activate)
}

// POST /api/combo/deactivate/:id
func (ctrl *ComboController) Deactivate(c *gin.Context) {
	runTransition(c, "combo", "deactivated", ctrl.comboService.Deactivate)
}

// POST /api/combo/delete/:id
func (ctrl *ComboController) Delete(c *gin.Context) {
	runTransition(c, "combo", "deleted", ctrl.comboService.Delete)
}

// POST /api/combo/restore/:id
func (ctrl *ComboController) Restore(c *gin.Context) {
	runTransition(c, "combo", "restored", ctrl.comboService.Restore)
}

// GET /api/combo/detail/:id
func (ctrl *ComboController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	combo, err := ctrl.comboService.Get(id, optionalActor(c))
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch combo")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Combo fetched", gin.H{"combo": combo})
}

// GET /api/combo/mine
func (ctrl *ComboController) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	combos, err := ctrl.comboService.ListMine(actor)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch combos")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Combos fetched", gin.H{"combos": combos, "count": len(combos)})
}

// GET /api/combo/deleted/:res_id
func (ctrl *ComboController) ListDeleted(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	combos, err := ctrl.comboService.ListDeleted(actor, restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch deleted combos")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Deleted combos fetched", gin.H{"combos": combos, "count": len(combos)})
}

// GET /api/combo/:res_id
func (ctrl *ComboController) ListPublic(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	combos, err := ctrl.comboService.ListPublic(restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch combos")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Combos fetched", gin.H{"combos": combos, "count": len(combos)})
}
