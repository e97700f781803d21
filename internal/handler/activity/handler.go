package activity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vicevalds/carelink/internal/handler"
	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
)

type Handler struct {
	repo repository.ActivityRepository
}

func NewHandler(repo repository.ActivityRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	activities := r.Group("/activities")
	{
		activities.POST("", h.CreateActivity)
		activities.GET("", h.ListActivities)
		activities.GET("/:id", h.GetActivity)
		activities.PUT("/:id", h.UpdateActivity)
		activities.DELETE("/:id", h.DeleteActivity)
	}
}

func (h *Handler) CreateActivity(c *gin.Context) {
	var req model.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}

	activity := &model.Activity{
		Date:       date,
		Title:      req.Title,
		Type:       req.Type,
		Time:       req.Time,
		Source:     req.Source,
		ReceivedAt: time.Now(),
	}
	if activity.Source == "" {
		activity.Source = "api"
	}

	if err := h.repo.Create(c.Request.Context(), activity); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(activity))
}

func (h *Handler) GetActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid activity ID"))
		return
	}

	activity, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(activity))
}

func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.repo.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(activities))
}

func (h *Handler) UpdateActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid activity ID"))
		return
	}

	var req model.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	activity, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		activity.Date = date
	}
	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Type != nil {
		activity.Type = *req.Type
	}
	if req.Time != nil {
		activity.Time = req.Time
	}

	if err := h.repo.Update(c.Request.Context(), activity); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(activity))
}

func (h *Handler) DeleteActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid activity ID"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}
