package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

type DiagnosisHandler struct {
	diagnosisService *services.DiagnosisService
}

func NewDiagnosisHandler(diagnosisService *services.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosisService: diagnosisService}
}

func (h *DiagnosisHandler) RegisterRoutes(rg *gin.RouterGroup, m *Middleware) {
	detection := rg.Group("/detection", m.RequireAuth())
	detection.POST("/analyze", h.OpenDiagnosis)
	detection.GET("/history", h.ListDiagnoses)
	detection.GET("/:id", h.GetDiagnosis)
	detection.PUT("/:id", h.UpdateDiagnosis)
	detection.DELETE("/:id", h.DeleteDiagnosis)
	detection.POST("/:id/images", h.UploadImage)
	detection.POST("/:id/images/:imageId/predict", h.Predict)
	detection.GET("/:id/predictions", h.ListPredictions)
}

func (h *DiagnosisHandler) OpenDiagnosis(c *gin.Context) {
	var req models.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	diagnosis, err := h.diagnosisService.OpenDiagnosis(c.Request.Context(), mustIdentity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(diagnosis))
}

func (h *DiagnosisHandler) ListDiagnoses(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	diagnoses, err := h.diagnosisService.ListDiagnoses(c.Request.Context(), mustIdentity(c), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(diagnoses))
}

func (h *DiagnosisHandler) GetDiagnosis(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	diagnosis, err := h.diagnosisService.GetDiagnosis(c.Request.Context(), mustIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(diagnosis))
}

func (h *DiagnosisHandler) UpdateDiagnosis(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	diagnosis, err := h.diagnosisService.UpdateDiagnosis(c.Request.Context(), mustIdentity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(diagnosis))
}

func (h *DiagnosisHandler) DeleteDiagnosis(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.diagnosisService.DeleteDiagnosis(c.Request.Context(), mustIdentity(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "diagnosis deleted"}))
}

// UploadImage accepts a multipart form with the image under the "file" field.
func (h *DiagnosisHandler) UploadImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file field required")
		return
	}

	resp, err := h.diagnosisService.AttachImage(c.Request.Context(), mustIdentity(c), id, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

func (h *DiagnosisHandler) Predict(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseUUIDParam(c, "imageId")
	if !ok {
		return
	}

	prediction, err := h.diagnosisService.Predict(c.Request.Context(), mustIdentity(c), id, imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(prediction))
}

func (h *DiagnosisHandler) ListPredictions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	predictions, err := h.diagnosisService.ListPredictions(c.Request.Context(), mustIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(predictions))
}
