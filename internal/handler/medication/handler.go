package medication

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
	repo repository.MedicationRepository
}

func NewHandler(repo repository.MedicationRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medications := r.Group("/medications")
	{
		medications.POST("", h.CreateMedication)
		medications.GET("", h.ListMedications)
		medications.GET("/:id", h.GetMedication)
		medications.PUT("/:id", h.UpdateMedication)
		medications.DELETE("/:id", h.DeleteMedication)
		medications.POST("/:id/doses", h.LogDose)
	}
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	medication := &model.Medication{
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Active:     true,
		Source:     req.Source,
		ReceivedAt: time.Now(),
	}
	if medication.Source == "" {
		medication.Source = "api"
	}

	if err := h.repo.Create(c.Request.Context(), medication); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(medication))
}

func (h *Handler) GetMedication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	medication, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medication))
}

func (h *Handler) ListMedications(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	var (
		medications []*model.Medication
		err         error
	)
	if activeOnly {
		medications, err = h.repo.ListActive(c.Request.Context())
	} else {
		medications, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medications))
}

func (h *Handler) UpdateMedication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	var req model.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	medication, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		medication.Frequency = *req.Frequency
	}
	if req.Active != nil {
		medication.Active = *req.Active
	}

	if err := h.repo.Update(c.Request.Context(), medication); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medication))
}

func (h *Handler) DeleteMedication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}

func (h *Handler) LogDose(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	if err := h.repo.LogDose(c.Request.Context(), id, time.Now()); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{Status: "success"})
}
