package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/services"
	"github.com/petsure/petsure/pkg/models"
)

type RecommendationHandler struct {
	logger          *logrus.Logger
	recommendations *services.RecommendationService
}

func NewRecommendationHandler(logger *logrus.Logger, recommendations *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		logger:          logger,
		recommendations: recommendations,
	}
}

// GetPreferences returns the preference form state: the saved snapshot (or
// neutral defaults), field labels and the breed list.
func (h *RecommendationHandler) GetPreferences(c *gin.Context) {
	profileID, ok := profileIDFromPath(c)
	if !ok {
		return
	}

	state, err := h.recommendations.FormState(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "PROFILE_NOT_FOUND", "Pet profile not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load preference form state")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PREFERENCES_LOOKUP_FAILED",
				"message": "Failed to load preferences",
			},
		})
		return
	}

	c.JSON(http.StatusOK, state)
}

// Create accepts a preference submission, persists the snapshot and returns
// the three ranked recommendation views.
func (h *RecommendationHandler) Create(c *gin.Context) {
	profileID, ok := profileIDFromPath(c)
	if !ok {
		return
	}

	var submission models.PreferenceSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		// A missing body still yields a neutral-default recommendation;
		// individual bad values are coerced downstream, not rejected.
		submission.Preferences = map[string]interface{}{}
	}

	result, err := h.recommendations.Recommend(c.Request.Context(), profileID, &submission)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "PROFILE_NOT_FOUND", "Pet profile not found")
			return
		}
		h.logger.WithError(err).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_GENERATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Compare returns every eligible product annotated with its SURE score.
func (h *RecommendationHandler) Compare(c *gin.Context) {
	profileID, ok := profileIDFromPath(c)
	if !ok {
		return
	}

	result, err := h.recommendations.Compare(c.Request.Context(), profileID, nil)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "PROFILE_NOT_FOUND", "Pet profile not found")
			return
		}
		h.logger.WithError(err).Error("Failed to build comparison view")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "COMPARISON_FAILED",
				"message": "Failed to build comparison view",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
