package controllers

import (
	"net/http"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	service "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/implementation/auth"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

// AuthController handles registration and sign-in
type AuthController struct {
	authService *service.AuthService
	logger      *logger.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *service.AuthService, logger *logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes with Gin
func (h *AuthController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/sign-in", h.SignIn)
	}
}

// Name, phone and password rules are checked by the service so their messages stay specific
var registerRequestSchema = z.Struct(z.Shape{
	"FullName": z.String(),
	"Email":    z.String().Required().Email(),
	"Phone":    z.String(),
	"Password": z.String(),
})

var signInRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Required(),
	"Password": z.String().Required(),
})

// Register handles user registration
func (h *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := registerRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		respondError(c, h.logger, api_models.ValidationFailure("A valid email is required."))
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SignIn handles user sign-in
func (h *AuthController) SignIn(c *gin.Context) {
	var req service.SignInRequest
	if err := signInRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		respondError(c, h.logger, api_models.ValidationFailure("Email and password are required."))
		return
	}

	if _, err := h.authService.SignIn(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sign-in successful."})
}
