package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/middleware"
	"github.com/petsure/petsure/internal/services"
	"github.com/petsure/petsure/pkg/models"
)

type ProfileHandler struct {
	logger   *logrus.Logger
	profiles *services.ProfileService
}

func NewProfileHandler(logger *logrus.Logger, profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// List returns the authenticated owner's pet profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	profiles, err := h.profiles.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list pet profiles")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PROFILE_LIST_FAILED",
				"message": "Failed to list pet profiles",
			},
		})
		return
	}

	if profiles == nil {
		profiles = []models.PetProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// CreateChoice records the insurance product the profile selected.
func (h *ProfileHandler) CreateChoice(c *gin.Context) {
	profileID, ok := profileIDFromPath(c)
	if !ok {
		return
	}

	var req models.ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Invalid request body format",
			},
		})
		return
	}

	choiceID, err := h.profiles.RecordChoice(c.Request.Context(), profileID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "PROFILE_NOT_FOUND", "Pet profile not found")
			return
		}
		h.logger.WithError(err).Error("Failed to record insurance choice")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "CHOICE_RECORDING_FAILED",
				"message": "Failed to record insurance choice",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"choice_id": choiceID})
}

func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"code":    "MISSING_AUTHORIZATION",
				"message": "Authentication required",
			},
		})
		return uuid.Nil, false
	}
	ownerID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_CONTEXT",
				"message": "Invalid user context",
			},
		})
		return uuid.Nil, false
	}
	return ownerID, true
}

func profileIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_PROFILE_ID",
				"message": "Invalid profile ID format",
			},
		})
		return uuid.Nil, false
	}
	return profileID, true
}

func notFound(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
