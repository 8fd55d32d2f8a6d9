package v1

import (
	"net/http"
	"time"

	"hireranker-backend/config"
	"hireranker-backend/internal/delivery/http/middleware"
	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/internal/usecase"
	"hireranker-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	RankingUC     domain.RankingUsecase
	ApplicationUC domain.ApplicationUsecase
	ScoringUC     domain.ScoringUsecase
	CatalogUC     domain.CatalogUsecase
	ExportUC      domain.ExportUsecase
	HealthUC      usecase.HealthUsecase
	Catalog       *scoring.Catalog
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators(deps.Catalog)

	r := gin.New()
	// Positions such as "server/waiter" are sent escaped in the path
	r.UseRawPath = true
	r.UnescapePathValues = true

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] == "error" {
			response.Error(c, http.StatusServiceUnavailable, "System unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	api.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	{
		scoreLimiter := middleware.RateLimitMiddleware(middleware.ScoringRateLimitConfig(cfg.RateLimitScoringThreshold, window))
		submitLimiter := middleware.RateLimitMiddleware(middleware.SubmitRateLimitConfig(cfg.RateLimitSubmitThreshold, window))

		NewCatalogHandler(api, deps.CatalogUC)
		NewRankingHandler(api, deps.RankingUC)
		NewApplicationHandler(api, deps.ApplicationUC, deps.RankingUC, submitLimiter)
		NewScoringHandler(api, deps.ScoringUC, scoreLimiter)
		NewExportHandler(api, deps.ExportUC)
	}

	return r
}

// registerValidators adds the custom binding tags to gin's validator.
func registerValidators(catalog *scoring.Catalog) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	validation.RegisterValidators(v)
	if catalog != nil {
		validation.RegisterPositionValidator(v, catalog.Has)
	}
}
