package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kshitijraj/authbot_app/cmd/docs"
	"github.com/kshitijraj/authbot_app/internal/core/domain"
	portssvc "github.com/kshitijraj/authbot_app/internal/core/ports/services"
	"github.com/kshitijraj/authbot_app/internal/middleware"
	"github.com/kshitijraj/authbot_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerPublicRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidations wires domain validations into gin's binding validator.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// authprovider accepts the known provider tags. Unknown OAuth
		// providers are allowed through as long as they are not empty;
		// "email" is reserved for the credential path.
		_ = v.RegisterValidation("authprovider", func(fl validator.FieldLevel) bool {
			switch domain.AuthProvider(fl.Field().String()) {
			case domain.ProviderEmail, domain.ProviderGoogle, domain.ProviderFacebook:
				return true
			default:
				return fl.Field().String() != ""
			}
		})
	}
}

// registerPublicRoutes configures the unauthenticated /api/v1/auth group.
func registerPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	public := r.Group("/api/v1")
	registerAuthRoutes(public, services)
	registerGoogleOAuthRoutes(public.Group("/auth"), cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
