package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/storage"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	uploader    *Uploader
}

func NewAuthController(authService service.AuthService, uploader *Uploader) *AuthController {
	return &AuthController{
		authService: authService,
		uploader:    uploader,
	}
}

type RegisterRequest struct {
	Name        string   `json:"name" form:"name" binding:"required"`
	Phone       string   `json:"phone" form:"phone" binding:"required"`
	Email       string   `json:"email" form:"email" binding:"omitempty,email"`
	Password    string   `json:"password" form:"password" binding:"required"`
	City        string   `json:"city" form:"city"`
	Address     string   `json:"address" form:"address"`
	Description string   `json:"description" form:"description"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	VehicleType string   `json:"vehicleType" form:"vehicleType"`
}

type VerifyOTPRequest struct {
	Role  model.UserRole `json:"role" binding:"required"`
	Phone string         `json:"phone" binding:"required"`
	Code  string         `json:"code" binding:"required"`
}

type ResendOTPRequest struct {
	Role  model.UserRole `json:"role" binding:"required"`
	Phone string         `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func roleParam(c *gin.Context) (model.UserRole, bool) {
	role := model.UserRole(c.Param("kind"))
	if !role.Valid() {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Unknown account kind")
		return "", false
	}
	return role, true
}

// Register creates a pending account and sends the verification code
// POST /api/auth/:kind/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	role, ok := roleParam(c)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return
	}

	photo, ok := ctrl.uploader.savePhoto(c, "accounts")
	if !ok {
		return
	}
	document, err := ctrl.uploader.Save(c, "document", "documents", storage.DocumentTypes)
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		apperrors.RespondWithServiceError(c, err, "upload document")
		return
	}

	account, err := ctrl.authService.Register(c.Request.Context(), service.RegisterInput{
		Role:        role,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Password:    req.Password,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		VehicleType: req.VehicleType,
		Photo:       photo,
		Document:    document,
	})
	if err != nil {
		ctrl.uploader.Discard(c, photo)
		ctrl.uploader.Discard(c, document)
		apperrors.RespondWithServiceError(c, err, "register account")
		return
	}

	log.Info("Account registered", map[string]interface{}{
		"role":       role,
		"account_id": account.AccountID(),
	})

	apperrors.RespondOK(c, http.StatusCreated, "Account created, verification code sent", gin.H{"account": account})
}

// POST /api/auth/verify-otp
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	account, err := ctrl.authService.VerifyOTP(c.Request.Context(), req.Role, req.Phone, req.Code)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "verify code")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Phone number verified", gin.H{"account": account})
}

// POST /api/auth/resend-otp
func (ctrl *AuthController) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	if err := ctrl.authService.ResendOTP(c.Request.Context(), req.Role, req.Phone); err != nil {
		apperrors.RespondWithServiceError(c, err, "resend code")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Verification code sent", nil)
}

// Login issues an access and refresh token pair
// POST /api/auth/:kind/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	role, ok := roleParam(c)
	if !ok {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	account, tokens, err := ctrl.authService.Login(c.Request.Context(), role, req.Phone, req.Password)
	if err != nil {
		log.Warn("Login failed", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		apperrors.RespondWithServiceError(c, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"role":       role,
		"account_id": account.AccountID(),
	})

	apperrors.RespondOK(c, http.StatusOK, "Login successful", gin.H{
		"account": account,
		"tokens":  tokens,
	})
}

// Logout revokes the access token of the request
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		apperrors.RespondWithServiceError(c, err, "logout")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Logged out", nil)
}

// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	account, err := ctrl.authService.GetAccount(actor.Role, actor.ID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch account")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Account fetched", gin.H{"account": account})
}
