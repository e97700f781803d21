package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vicevalds/carelink/internal/handler"
	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/service/profile"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profile")
	{
		profiles.GET("", h.GetProfile)
		profiles.PUT("", h.UpsertProfile)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	prof := h.service.Get(c.Request.Context())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prof))
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	var req model.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prof := &model.Profile{
		Name:               req.Name,
		Age:                req.Age,
		BirthDate:          req.BirthDate,
		Gender:             req.Gender,
		HealthConditions:   req.HealthConditions,
		ChronicMedications: req.ChronicMedications,
		Preferences:        req.Preferences,
		Family:             req.Family,
		PhotoURL:           req.PhotoURL,
	}

	if err := h.service.Upsert(c.Request.Context(), prof); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prof))
}
