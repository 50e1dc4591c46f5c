package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

type FarmHandler struct {
	farmService *services.FarmService
}

func NewFarmHandler(farmService *services.FarmService) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

func (h *FarmHandler) RegisterRoutes(rg *gin.RouterGroup, m *Middleware) {
	farms := rg.Group("/farms", m.RequireAuth())
	farms.POST("", h.CreateFarm)
	farms.GET("", h.ListFarms)
	farms.GET("/:id", h.GetFarm)
	farms.PUT("/:id", h.UpdateFarm)
	farms.DELETE("/:id", h.DeleteFarm)

	units := rg.Group("/farms/units", m.RequireAuth())
	units.POST("", h.CreateUnit)
	units.GET("/:id", h.GetUnit)
	units.PUT("/:id", h.UpdateUnit)
	units.DELETE("/:id", h.DeleteUnit)
}

func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var req models.CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	farm, err := h.farmService.CreateFarm(c.Request.Context(), mustIdentity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(farm))
}

func (h *FarmHandler) ListFarms(c *gin.Context) {
	farms, err := h.farmService.ListFarms(c.Request.Context(), mustIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(farms))
}

func (h *FarmHandler) GetFarm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	farm, err := h.farmService.GetFarm(c.Request.Context(), mustIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(farm))
}

func (h *FarmHandler) UpdateFarm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	farm, err := h.farmService.UpdateFarm(c.Request.Context(), mustIdentity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(farm))
}

func (h *FarmHandler) DeleteFarm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.farmService.DeleteFarm(c.Request.Context(), mustIdentity(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "farm deleted"}))
}

func (h *FarmHandler) CreateUnit(c *gin.Context) {
	var req models.CreateFarmUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	unit, err := h.farmService.CreateUnit(c.Request.Context(), mustIdentity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(unit))
}

func (h *FarmHandler) GetUnit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	unit, err := h.farmService.GetUnit(c.Request.Context(), mustIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(unit))
}

func (h *FarmHandler) UpdateUnit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFarmUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	unit, err := h.farmService.UpdateUnit(c.Request.Context(), mustIdentity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(unit))
}

func (h *FarmHandler) DeleteUnit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.farmService.DeleteUnit(c.Request.Context(), mustIdentity(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "unit deleted"}))
}
