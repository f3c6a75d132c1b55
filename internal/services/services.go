package services

import (
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/internal/config"
	"github.com/petsure/petsure/internal/database"
)

type Services struct {
	Auth           *AuthService
	Health         *HealthService
	Profile        *ProfileService
	Product        *ProductService
	Recommendation *RecommendationService
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database, cat *catalog.Catalog) (*Services, error) {
	authService := NewAuthService(cfg, logger, db.Redis)
	healthService := NewHealthService(cfg, logger, db, cat)

	profileService := NewProfileService(db.PG, logger)
	productService := NewProductService(db.PG, cat, logger)

	recommendationService := NewRecommendationService(
		profileService, productService, cat, db.Redis, &cfg.Recommendation, logger,
	)

	return &Services{
		Auth:           authService,
		Health:         healthService,
		Profile:        profileService,
		Product:        productService,
		Recommendation: recommendationService,
	}, nil
}
