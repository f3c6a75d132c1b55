package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Profile        *ProfileHandler
	Product        *ProductHandler
	Recommendation *RecommendationHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Auth:           NewAuthHandler(logger, services.Auth),
		Profile:        NewProfileHandler(logger, services.Profile),
		Product:        NewProductHandler(logger, services.Product),
		Recommendation: NewRecommendationHandler(logger, services.Recommendation),
	}
}
