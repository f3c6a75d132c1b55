package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/internal/config"
	"github.com/petsure/petsure/internal/database"
)

type HealthService struct {
	config  *config.Config
	logger  *logrus.Logger
	db      *database.Database
	catalog *catalog.Catalog

	healthCheckStatus *prometheus.GaugeVec
}

type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]string      `json:"services"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func NewHealthService(cfg *config.Config, logger *logrus.Logger, db *database.Database, cat *catalog.Catalog) *HealthService {
	hs := &HealthService{
		config:  cfg,
		logger:  logger,
		db:      db,
		catalog: cat,
	}

	hs.healthCheckStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "health_check_status",
		Help: "Health check status (1 = healthy, 0 = unhealthy)",
	}, []string{"service"})

	// Register with error handling - ignore if already registered
	if err := prometheus.Register(hs.healthCheckStatus); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			logger.WithError(err).Warn("Failed to register health_check_status metric")
		}
	}

	return hs
}

func (hs *HealthService) CheckHealth() HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string),
		Details:   make(map[string]interface{}),
	}

	check := func(name string, err error) {
		if err != nil {
			hs.logger.WithError(err).WithField("service", name).Warn("Health check failed")
			status.Services[name] = "unhealthy"
			status.Status = "unhealthy"
			hs.healthCheckStatus.WithLabelValues(name).Set(0)
			return
		}
		status.Services[name] = "healthy"
		hs.healthCheckStatus.WithLabelValues(name).Set(1)
	}

	check("postgresql", hs.db.PG.Ping(ctx))
	check("redis", hs.db.Redis.Ping(ctx).Err())

	covers, diseases, breeds := hs.catalog.Sizes()
	status.Details["catalog"] = map[string]int{
		"covers":   covers,
		"diseases": diseases,
		"breeds":   breeds,
	}
	if covers == 0 || diseases == 0 {
		// Empty reference data still serves requests, just poorly.
		status.Services["catalog"] = "degraded"
		if status.Status == "healthy" {
			status.Status = "degraded"
		}
	} else {
		status.Services["catalog"] = "healthy"
	}

	return status
}
