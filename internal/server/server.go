package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/receptorium/backend/config"
	"github.com/receptorium/backend/internal/api"
	"github.com/receptorium/backend/internal/router"
	"github.com/receptorium/backend/internal/service"
)

// Server wires the services and handlers over one HTTP listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New assembles the full service graph for the given database and image store.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStore service.ImageStore) *Server {
	authSvc := service.NewAuthService(db, cfg.JWTSecret)
	userSvc := service.NewUserService(db)
	listSvc := service.NewListService(db)
	recipeSvc := service.NewRecipeService(db)
	shoppingSvc := service.NewShoppingService(db)
	ingredientSvc := service.NewIngredientService(db)
	tagSvc := service.NewTagService(db)
	imageSvc := service.NewImageService(imageStore)

	authHandler := api.NewAuthHandler(authSvc)
	userHandler := api.NewUserHandler(userSvc, listSvc, authSvc, authSvc, cfg.PageSize)
	recipeHandler := api.NewRecipeHandler(recipeSvc, listSvc, shoppingSvc, userSvc, imageSvc, authSvc, cfg.PageSize)
	ingredientHandler := api.NewIngredientHandler(ingredientSvc)
	tagHandler := api.NewTagHandler(tagSvc)

	engine := router.SetupRouter(cfg, authHandler, userHandler, recipeHandler, ingredientHandler, tagHandler, redisClient)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
