package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

const categoryPhotoFolder = "categories"

type CategoryController struct {
	categoryService service.CategoryService
	uploader        *Uploader
}

func NewCategoryController(categoryService service.CategoryService, uploader *Uploader) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		uploader:        uploader,
	}
}

type CategoryRequest struct {
	RestaurantID uint   `json:"restaurantId" form:"restaurantId"`
	Name         string `json:"name" form:"name"`
	ShortName    string `json:"shortName" form:"shortName"`
	Description  string `json:"description" form:"description"`
	Status       string `json:"status" form:"status"`
}

func (r CategoryRequest) input(actor service.Actor, photo string) service.CategoryInput {
	restaurantID := r.RestaurantID
	if restaurantID == 0 {
		restaurantID = actor.ID
	}
	return service.CategoryInput{
		RestaurantID: restaurantID,
		Name:         r.Name,
		ShortName:    r.ShortName,
		Description:  r.Description,
		Status:       model.Status(r.Status),
		Photo:        photo,
	}
}

// Create creates a category, optionally with a photo
// POST /api/category/create
func (ctrl *CategoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, categoryPhotoFolder)
	if !ok {
		return
	}

	category, err := ctrl.categoryService.Create(actor, req.input(actor, photo))
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "create category")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Category created", gin.H{"category": category})
}

// Update replaces the mutable fields; a new photo releases the old one
// POST /api/category/update/:id
func (ctrl *CategoryController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, categoryPhotoFolder)
	if !ok {
		return
	}

	category, replaced, err := ctrl.categoryService.Update(actor, id, req.input(actor, photo))
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "update category")
		return
	}
	ctrl.uploader.Discard(c, replaced)

	apperrors.RespondOK(c, http.StatusOK, "Category updated", gin.H{"category": category})
}

// POST /api/category/delete/:id
func (ctrl *CategoryController) Delete(c *gin.Context) {
	runTransition(c, "category", "deleted", ctrl.categoryService.Delete)
}

// POST /api/category/activate/:id
func (ctrl *CategoryController) Activate(c *gin.Context) {
	runTransition(c, "category", "activated", ctrl.categoryService.Activate)
}

// POST /api/category/deactivate/:id
func (ctrl *CategoryController) Deactivate(c *gin.Context) {
	runTransition(c, "category", "deactivated", ctrl.categoryService.Deactivate)
}

// POST /api/category/restore/:id
func (ctrl *CategoryController) Restore(c *gin.Context) {
	runTransition(c, "category", "restored", ctrl.categoryService.Restore)
}

// ListMine returns every non-deleted category of the calling restaurant
// GET /api/category/mine
func (ctrl *CategoryController) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListMine(actor)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch categories")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Categories fetched", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GET /api/category/deleted/:res_id
func (ctrl *CategoryController) ListDeleted(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListDeleted(actor, restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch deleted categories")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Deleted categories fetched", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListPublic returns the active categories of a restaurant
// GET /api/category/:res_id
func (ctrl *CategoryController) ListPublic(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	categories, err := ctrl.categoryService.ListPublic(restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch categories")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Categories fetched", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// runTransition serves the guarded status changes shared by every catalog entity.
func runTransition[T any](c *gin.Context, entity, verb string, fn func(service.Actor, uint, uint) (T, error)) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	restaurantID := bindOwner(c, actor)

	result, err := fn(actor, id, restaurantID)
	if err != nil {
		info := apperrors.RespondWithServiceError(c, err, verb+" "+entity)
		log.Warn("State change rejected", map[string]interface{}{
			"entity":        entity,
			"id":            id,
			"restaurant_id": restaurantID,
			"kind":          info.Kind.String(),
		})
		return
	}

	apperrors.RespondOK(c, http.StatusOK, capitalize(entity)+" "+verb, gin.H{entity: result})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
