package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const productPhotoFolder = "products"

type ProductController struct {
	productService service.ProductService
	offerService   service.OfferService
	uploader       *Uploader
}

func NewProductController(productService service.ProductService, offerService service.OfferService, uploader *Uploader) *ProductController {
	return &ProductController{
		productService: productService,
		offerService:   offerService,
		uploader:       uploader,
	}
}

// ProductRequest is bound from JSON or multipart. In multipart requests the
// addons field is read separately as a comma-separated string.
type ProductRequest struct {
	CategoryID      uint              `json:"categoryId" form:"categoryId"`
	RestaurantID    uint              `json:"restaurantId" form:"restaurantId"`
	Name            string            `json:"name" form:"name"`
	Description     string            `json:"description" form:"description"`
	SalePrice       float64           `json:"salePrice" form:"salePrice"`
	PrepTimeMinutes *int              `json:"prepTimeMinutes" form:"prepTimeMinutes"`
	Addons          *service.AddonIDs `json:"addons" form:"-"`
}

func isFormRequest(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == binding.MIMEMultipartPOSTForm || ct == binding.MIMEPOSTForm
}

func (ctrl *ProductController) bind(c *gin.Context) (*ProductRequest, bool) {
	var req ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return nil, false
	}
	if isFormRequest(c) {
		if raw, ok := c.GetPostForm("addons"); ok {
			ids, err := service.ParseAddonIDs(raw)
			if err != nil {
				apperrors.RespondWithServiceError(c, err, "parse addons")
				return nil, false
			}
			req.Addons = &ids
		}
	}
	return &req, true
}

func (r *ProductRequest) input(actor service.Actor, photo string) service.ProductInput {
	restaurantID := r.RestaurantID
	if restaurantID == 0 {
		restaurantID = actor.ID
	}
	return service.ProductInput{
		CategoryID:      r.CategoryID,
		RestaurantID:    restaurantID,
		Name:            r.Name,
		Description:     r.Description,
		SalePrice:       r.SalePrice,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Addons:          r.Addons,
		Photo:           photo,
	}
}

// Create creates a product under one of the caller's categories
// POST /api/product/create
func (ctrl *ProductController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	req, ok := ctrl.bind(c)
	if !ok {
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, productPhotoFolder)
	if !ok {
		return
	}

	product, err := ctrl.productService.Create(actor, req.input(actor, photo))
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "create product")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

// Update replaces fields and reconciles the addon set when addons is sent
// POST /api/product/update/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := ctrl.bind(c)
	if !ok {
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, productPhotoFolder)
	if !ok {
		return
	}

	product, replaced, err := ctrl.productService.Update(actor, id, req.input(actor, photo))
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "update product")
		return
	}
	ctrl.uploader.Discard(c, replaced)

	apperrors.RespondOK(c, http.StatusOK, "Product updated", gin.H{"product": product})
}

// POST /api/product/delete/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	runTransition(c, "product", "deleted", ctrl.productService.Delete)
}

// POST /api/product/activate/:id
func (ctrl *ProductController) Activate(c *gin.Context) {
	runTransition(c, "product", "activated", ctrl.productService.Activate)
}

// POST /api/product/deactivate/:id
func (ctrl *ProductController) Deactivate(c *gin.Context) {
	runTransition(c, "product", "deactivated", ctrl.productService.Deactivate)
}

// POST /api/product/restore/:id
func (ctrl *ProductController) Restore(c *gin.Context) {
	runTransition(c, "product", "restored", ctrl.productService.Restore)
}

// POST /api/product/hide/:id
func (ctrl *ProductController) Hide(c *gin.Context) {
	runTransition(c, "product", "hidden", ctrl.productService.Hide)
}

// POST /api/product/unhide/:id
func (ctrl *ProductController) Unhide(c *gin.Context) {
	runTransition(c, "product", "unhidden", ctrl.productService.Unhide)
}

// Detail returns a product with its addons, effective offers and rating
// GET /api/product/detail/:id
func (ctrl *ProductController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.productService.GetDetail(id, optionalActor(c))
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch product")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Product fetched", gin.H{"product": detail})
}

// GET /api/product/category/:category_id
func (ctrl *ProductController) ListByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}

	products, err := ctrl.productService.ListByCategory(categoryID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch products")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Products fetched", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GET /api/product/mine
func (ctrl *ProductController) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	products, err := ctrl.productService.ListMine(actor)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch products")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Products fetched", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GET /api/product/deleted/:res_id
func (ctrl *ProductController) ListDeleted(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	restaurantID, ok := parseIDParam(c, "res_id")
	if !ok {
		return
	}

	products, err := ctrl.productService.ListDeleted(actor, restaurantID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch deleted products")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Deleted products fetched", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Offers returns the offers a product currently grants, split by class
// GET /api/product/offers/:id
func (ctrl *ProductController) Offers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offers, err := ctrl.offerService.ListEffective(id)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch offers")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Offers fetched", gin.H{
		"discounts":       offers.Discounts,
		"pleasing_offers": offers.PleasingOffers,
	})
}
