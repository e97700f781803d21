package interaction

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vicevalds/carelink/internal/handler"
	"github.com/vicevalds/carelink/internal/service/interaction"
)

type Handler struct {
	service *interaction.Service
}

func NewHandler(service *interaction.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	interactions := r.Group("/interactions")
	{
		interactions.GET("", h.ListInteractions)
	}
}

func (h *Handler) ListInteractions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	interactions, err := h.service.List(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(interactions))
}
