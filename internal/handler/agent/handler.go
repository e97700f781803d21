package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vicevalds/carelink/internal/handler"
	"github.com/vicevalds/carelink/internal/service/reminder"
)

type Handler struct {
	service *reminder.Service
}

func NewHandler(service *reminder.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	agent := r.Group("/agent")
	{
		agent.POST("/transcription", h.HandleTranscription)
		agent.POST("/check-reminders", h.TriggerCheck)
	}
}

type transcriptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type transcriptionResponse struct {
	Confirmed  bool   `json:"confirmed"`
	Medication string `json:"medication,omitempty"`
}

// HandleTranscription receives a voice transcription and applies the
// medication confirmation contract to it.
func (h *Handler) HandleTranscription(c *gin.Context) {
	var req transcriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	confirmed, err := h.service.ConfirmFromTranscript(c.Request.Context(), req.Text)
	if err != nil {
		handler.Error(c, err)
		return
	}

	resp := transcriptionResponse{}
	if confirmed != nil {
		resp.Confirmed = true
		resp.Medication = confirmed.Name
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

// TriggerCheck runs one reminder pass on demand, outside the scheduler
// cadence. Useful when verifying a deployment.
func (h *Handler) TriggerCheck(c *gin.Context) {
	h.service.RunCheck(c.Request.Context())
	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}
