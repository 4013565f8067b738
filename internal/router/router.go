package router

import (
	"net/http"
	"strings"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/controller"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Auth       *controller.AuthController
	Category   *controller.CategoryController
	Product    *controller.ProductController
	Combo      *controller.ComboController
	Addon      *controller.AddonController
	Offer      *controller.OfferController
	Favorite   *controller.FavoriteController
	Rate       *controller.RateController
	HomeAd     *controller.HomeAdController
	Restaurant *controller.RestaurantController
	Address    *controller.AddressController
	Upload     *controller.UploadController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "fodz API is running",
		})
	})

	if r.config.Storage.Driver == "local" && strings.HasPrefix(r.config.Storage.PublicBaseURL, "/") {
		router.Static(r.config.Storage.PublicBaseURL, r.config.Storage.LocalDir)
	}

	ctl := r.controllers
	authenticated := r.authMiddleware.Authenticate()
	optional := r.authMiddleware.OptionalAuthenticate()
	customerOnly := r.authMiddleware.RequireRole(model.RoleCustomer)
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/:kind/register", ctl.Auth.Register)
			auth.POST("/:kind/login", ctl.Auth.Login)
			auth.POST("/verify-otp", ctl.Auth.VerifyOTP)
			auth.POST("/resend-otp", ctl.Auth.ResendOTP)
			auth.POST("/logout", authenticated, ctl.Auth.Logout)
			auth.GET("/me", authenticated, ctl.Auth.Me)
		}

		// Ownership is checked per request by the catalog services, so these
		// groups only require a session.
		category := api.Group("/category")
		{
			category.POST("/create", authenticated, ctl.Category.Create)
			category.POST("/update/:id", authenticated, ctl.Category.Update)
			category.POST("/delete/:id", authenticated, ctl.Category.Delete)
			category.POST("/activate/:id", authenticated, ctl.Category.Activate)
			category.POST("/deactivate/:id", authenticated, ctl.Category.Deactivate)
			category.POST("/restore/:id", authenticated, ctl.Category.Restore)
			category.GET("/mine", authenticated, ctl.Category.ListMine)
			category.GET("/deleted/:res_id", authenticated, ctl.Category.ListDeleted)
			category.GET("/:res_id", ctl.Category.ListPublic)
		}

		product := api.Group("/product")
		{
			product.POST("/create", authenticated, ctl.Product.Create)
			product.POST("/update/:id", authenticated, ctl.Product.Update)
			product.POST("/delete/:id", authenticated, ctl.Product.Delete)
			product.POST("/activate/:id", authenticated, ctl.Product.Activate)
			product.POST("/deactivate/:id", authenticated, ctl.Product.Deactivate)
			product.POST("/restore/:id", authenticated, ctl.Product.Restore)
			product.POST("/hide/:id", authenticated, ctl.Product.Hide)
			product.POST("/unhide/:id", authenticated, ctl.Product.Unhide)
			product.GET("/mine", authenticated, ctl.Product.ListMine)
			product.GET("/deleted/:res_id", authenticated, ctl.Product.ListDeleted)
			product.GET("/category/:category_id", ctl.Product.ListByCategory)
			product.GET("/detail/:id", optional, ctl.Product.Detail)
			product.GET("/offers/:id", ctl.Product.Offers)
		}

		combo := api.Group("/combo")
		{
			combo.POST("/create", authenticated, ctl.Combo.Create)
			combo.POST("/update/:id", authenticated, ctl.Combo.Update)
			combo.POST("/delete/:id", authenticated, ctl.Combo.Delete)
			combo.POST("/activate/:id", authenticated, ctl.Combo.Activate)
			combo.POST("/deactivate/:id", authenticated, ctl.Combo.Deactivate)
			combo.POST("/restore/:id", authenticated, ctl.Combo.Restore)
			combo.GET("/mine", authenticated, ctl.Combo.ListMine)
			combo.GET("/deleted/:res_id", authenticated, ctl.Combo.ListDeleted)
			combo.GET("/detail/:id", optional, ctl.Combo.Detail)
			combo.GET("/:res_id", ctl.Combo.ListPublic)
		}

		addon := api.Group("/addon")
		{
			addon.POST("/create", authenticated, ctl.Addon.Create)
			addon.POST("/update/:id", authenticated, ctl.Addon.Update)
			addon.POST("/delete/:id", authenticated, ctl.Addon.Delete)
			addon.POST("/activate/:id", authenticated, ctl.Addon.Activate)
			addon.POST("/deactivate/:id", authenticated, ctl.Addon.Deactivate)
			addon.GET("/mine", authenticated, ctl.Addon.ListMine)
			addon.GET("/:res_id", ctl.Addon.ListPublic)
		}

		offer := api.Group("/offer")
		offer.Use(authenticated)
		{
			offer.POST("/create", ctl.Offer.Create)
			offer.POST("/delete/:id", ctl.Offer.Delete)
			offer.POST("/activate/:id", ctl.Offer.Activate)
			offer.POST("/deactivate/:id", ctl.Offer.Deactivate)
			offer.GET("/product/:product_id", ctl.Offer.ListByProduct)
		}

		favorite := api.Group("/favorite")
		favorite.Use(authenticated, customerOnly)
		{
			favorite.POST("/add/:product_id", ctl.Favorite.Add)
			favorite.POST("/remove/:product_id", ctl.Favorite.Remove)
			favorite.GET("/mine", ctl.Favorite.List)
		}

		rate := api.Group("/rate")
		{
			rate.POST("/:product_id", authenticated, customerOnly, ctl.Rate.Rate)
			rate.GET("/:product_id", ctl.Rate.ListByProduct)
		}

		homeAd := api.Group("/home-ad")
		{
			homeAd.GET("", ctl.HomeAd.ListActive)
			homeAd.GET("/all", authenticated, adminOnly, ctl.HomeAd.ListAll)
			homeAd.POST("/create", authenticated, adminOnly, ctl.HomeAd.Create)
			homeAd.POST("/delete/:id", authenticated, adminOnly, ctl.HomeAd.Delete)
		}

		restaurant := api.Group("/restaurant")
		{
			restaurant.GET("", ctl.Restaurant.List)
			restaurant.GET("/:id", ctl.Restaurant.Get)
			restaurant.POST("/verify/:id", authenticated, adminOnly, ctl.Restaurant.Verify)
		}

		address := api.Group("/address")
		address.Use(authenticated, customerOnly)
		{
			address.GET("", ctl.Address.ListAddresses)
			address.POST("/create", ctl.Address.CreateAddress)
			address.POST("/update/:id", ctl.Address.UpdateAddress)
			address.POST("/delete/:id", ctl.Address.DeleteAddress)
			address.POST("/default/:id", ctl.Address.SetDefaultAddress)
		}

		upload := api.Group("/upload")
		upload.Use(authenticated)
		{
			upload.POST("/presigned-url", ctl.Upload.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
