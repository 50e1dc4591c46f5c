package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

type TreatmentHandler struct {
	treatmentService *services.TreatmentService
}

func NewTreatmentHandler(treatmentService *services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{treatmentService: treatmentService}
}

func (h *TreatmentHandler) RegisterRoutes(rg *gin.RouterGroup, m *Middleware) {
	treatments := rg.Group("/treatments", m.RequireAuth())
	treatments.GET("", h.ListTreatments)
	treatments.GET("/:id", h.GetTreatment)
	treatments.POST("", m.RequireAdmin(), h.CreateTreatment)
	treatments.PUT("/:id", m.RequireAdmin(), h.UpdateTreatment)
	treatments.DELETE("/:id", m.RequireAdmin(), h.DeleteTreatment)

	links := rg.Group("/diseases/:id/treatments", m.RequireAuth())
	links.GET("", h.ListDiseaseTreatments)
	links.POST("", m.RequireAdmin(), h.LinkTreatment)
	links.DELETE("/:treatmentId", m.RequireAdmin(), h.UnlinkTreatment)
}

func (h *TreatmentHandler) CreateTreatment(c *gin.Context) {
	var req models.CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	treatment, err := h.treatmentService.CreateTreatment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(treatment))
}

func (h *TreatmentHandler) ListTreatments(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	treatments, err := h.treatmentService.ListTreatments(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(treatments))
}

func (h *TreatmentHandler) GetTreatment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	treatment, err := h.treatmentService.GetTreatment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(treatment))
}

func (h *TreatmentHandler) UpdateTreatment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	treatment, err := h.treatmentService.UpdateTreatment(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(treatment))
}

func (h *TreatmentHandler) DeleteTreatment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.treatmentService.DeleteTreatment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "treatment deleted"}))
}

func (h *TreatmentHandler) LinkTreatment(c *gin.Context) {
	diseaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.LinkTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	link, err := h.treatmentService.LinkTreatment(c.Request.Context(), diseaseID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(link))
}

func (h *TreatmentHandler) ListDiseaseTreatments(c *gin.Context) {
	diseaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	links, err := h.treatmentService.ListDiseaseTreatments(c.Request.Context(), diseaseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(links))
}

func (h *TreatmentHandler) UnlinkTreatment(c *gin.Context) {
	diseaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	treatmentID, ok := parseUUIDParam(c, "treatmentId")
	if !ok {
		return
	}

	if err := h.treatmentService.UnlinkTreatment(c.Request.Context(), diseaseID, treatmentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "treatment unlinked"}))
}
