package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

// DiseaseHandler exposes the disease and symptom catalogue. Reads are public,
// writes require an admin token.
type DiseaseHandler struct {
	diseaseService *services.DiseaseService
}

func NewDiseaseHandler(diseaseService *services.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{diseaseService: diseaseService}
}

func (h *DiseaseHandler) RegisterRoutes(rg *gin.RouterGroup, m *Middleware) {
	diseases := rg.Group("/diseases")
	diseases.GET("", h.ListDiseases)
	diseases.GET("/:id", h.GetDisease)
	diseases.POST("", m.RequireAuth(), m.RequireAdmin(), h.CreateDisease)
	diseases.PUT("/:id", m.RequireAuth(), m.RequireAdmin(), h.UpdateDisease)
	diseases.DELETE("/:id", m.RequireAuth(), m.RequireAdmin(), h.DeleteDisease)

	symptoms := rg.Group("/symptoms")
	symptoms.GET("", h.ListSymptoms)
	symptoms.GET("/:id", h.GetSymptom)
	symptoms.POST("", m.RequireAuth(), m.RequireAdmin(), h.CreateSymptom)
	symptoms.PUT("/:id", m.RequireAuth(), m.RequireAdmin(), h.UpdateSymptom)
	symptoms.DELETE("/:id", m.RequireAuth(), m.RequireAdmin(), h.DeleteSymptom)
}

func (h *DiseaseHandler) CreateDisease(c *gin.Context) {
	var req models.CreateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	disease, err := h.diseaseService.CreateDisease(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(disease))
}

func (h *DiseaseHandler) ListDiseases(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	diseases, err := h.diseaseService.ListDiseases(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(diseases))
}

func (h *DiseaseHandler) GetDisease(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	disease, err := h.diseaseService.GetDisease(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(disease))
}

func (h *DiseaseHandler) UpdateDisease(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	disease, err := h.diseaseService.UpdateDisease(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(disease))
}

func (h *DiseaseHandler) DeleteDisease(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.diseaseService.DeleteDisease(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "disease deleted"}))
}

func (h *DiseaseHandler) CreateSymptom(c *gin.Context) {
	var req models.CreateSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	symptom, err := h.diseaseService.CreateSymptom(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(symptom))
}

func (h *DiseaseHandler) ListSymptoms(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	symptoms, err := h.diseaseService.ListSymptoms(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(symptoms))
}

func (h *DiseaseHandler) GetSymptom(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	symptom, err := h.diseaseService.GetSymptom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(symptom))
}

func (h *DiseaseHandler) UpdateSymptom(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	symptom, err := h.diseaseService.UpdateSymptom(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(symptom))
}

func (h *DiseaseHandler) DeleteSymptom(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.diseaseService.DeleteSymptom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "symptom deleted"}))
}
