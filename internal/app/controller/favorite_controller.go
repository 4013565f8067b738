package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// POST /api/favorite/add/:product_id
func (ctrl *FavoriteController) Add(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	favorite, err := ctrl.favoriteService.Add(actor.ID, productID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "add favorite")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Added to favorites", gin.H{"favorite": favorite})
}

// POST /api/favorite/remove/:product_id
func (ctrl *FavoriteController) Remove(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	if err := ctrl.favoriteService.Remove(actor.ID, productID); err != nil {
		apperrors.RespondWithServiceError(c, err, "remove favorite")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Removed from favorites", nil)
}

// GET /api/favorite/mine
func (ctrl *FavoriteController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	favorites, err := ctrl.favoriteService.List(actor.ID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch favorites")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Favorites fetched", gin.H{"favorites": favorites, "count": len(favorites)})
}
