package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngagementControllerTest(t *testing.T) *catalogHarness {
	h := setupCatalogControllerTest(t)
	productRepo := repository.NewProductRepository(h.db)

	favorites := NewFavoriteController(service.NewFavoriteService(repository.NewFavoriteRepository(h.db), productRepo))
	rates := NewRateController(service.NewRateService(repository.NewRateRepository(h.db), productRepo))
	addresses := NewAddressController(service.NewAddressService(repository.NewAddressRepository(h.db)))
	uploads := NewUploadController(h.store)

	h.router.POST("/favorite/add/:product_id", favorites.Add)
	h.router.POST("/favorite/remove/:product_id", favorites.Remove)
	h.router.GET("/favorite/mine", favorites.List)
	h.router.POST("/rate/:product_id", rates.Rate)
	h.router.GET("/rate/:product_id", rates.ListByProduct)
	h.router.GET("/address", addresses.ListAddresses)
	h.router.POST("/address/create", addresses.CreateAddress)
	h.router.POST("/address/update/:id", addresses.UpdateAddress)
	h.router.POST("/address/default/:id", addresses.SetDefaultAddress)
	h.router.POST("/upload/presigned-url", uploads.GeneratePresignedURL)
	return h
}

func TestFavoriteController_AddListRemove(t *testing.T) {
	h := setupEngagementControllerTest(t)
	productID := h.createProduct(t, h.createCategory(t, "Drinks"), "Cola")
	addPath := fmt.Sprintf("/favorite/add/%d", productID)

	w := doJSON(t, h.router, http.MethodPost, addPath, customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, h.router, http.MethodPost, addPath, customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h.router, http.MethodGet, "/favorite/mine", customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doJSON(t, h.router, http.MethodPost, fmt.Sprintf("/favorite/remove/%d", productID), customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h.router, http.MethodGet, "/favorite/mine", customerCaller, nil)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])

	w = doJSON(t, h.router, http.MethodPost, "/favorite/add/9999", customerCaller, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, w))
}

func TestRateController_RateAndSummary(t *testing.T) {
	h := setupEngagementControllerTest(t)
	productID := h.createProduct(t, h.createCategory(t, "Drinks"), "Cola")
	path := fmt.Sprintf("/rate/%d", productID)
	other := caller{id: 8, role: customerCaller.role}

	w := doJSON(t, h.router, http.MethodPost, path, customerCaller, gin.H{"value": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "RATE_INVALID_VALUE", errorCode(t, w))

	w = doJSON(t, h.router, http.MethodPost, path, customerCaller, gin.H{"value": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, h.router, http.MethodPost, path, customerCaller, gin.H{"value": 5, "comment": "changed my mind"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, h.router, http.MethodPost, path, other, gin.H{"value": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h.router, http.MethodGet, path, guest, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.InDelta(t, 4.5, body["average"], 0.001)
}

func TestAddressController_DefaultAndOwnership(t *testing.T) {
	h := setupEngagementControllerTest(t)
	home := gin.H{"label": "home", "city": "Damascus", "street": "Baghdad St"}

	w := doJSON(t, h.router, http.MethodPost, "/address/create", customerCaller, home)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	address := decodeBody(t, w)["address"].(map[string]interface{})
	assert.Equal(t, true, address["is_default"])
	firstID := uint(address["id"].(float64))

	w = doJSON(t, h.router, http.MethodPost, "/address/create", customerCaller, gin.H{"label": "work", "city": "Damascus", "street": "Mezzeh"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	secondID := entityID(t, w, "address")

	w = doJSON(t, h.router, http.MethodPost, fmt.Sprintf("/address/default/%d", secondID), customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, h.router, http.MethodGet, "/address", customerCaller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, raw := range decodeBody(t, w)["addresses"].([]interface{}) {
		a := raw.(map[string]interface{})
		assert.Equal(t, uint(a["id"].(float64)) == secondID, a["is_default"])
	}

	intruder := caller{id: 99, role: customerCaller.role}
	w = doJSON(t, h.router, http.MethodPost, fmt.Sprintf("/address/update/%d", firstID), intruder, home)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ADDRESS_NOT_FOUND", errorCode(t, w))

	w = doJSON(t, h.router, http.MethodPost, "/address/create", customerCaller, gin.H{"label": "home"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", errorCode(t, w))
}

func TestUploadController_PresignRequiresS3(t *testing.T) {
	h := setupEngagementControllerTest(t)

	w := doJSON(t, h.router, http.MethodPost, "/upload/presigned-url", ownerCaller, gin.H{
		"filename":     "pizza.png",
		"content_type": "image/png",
	})

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "UPLOAD_FAILED", errorCode(t, w))
}
