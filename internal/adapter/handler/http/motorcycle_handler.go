package http

import (
	"net/http"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MotorcycleHandler struct {
	motorcycleService *services.MotorcycleService
	logger            ports.LoggerPort
	metrics           ports.MetricsPort
}

func NewMotorcycleHandler(
	motorcycleService *services.MotorcycleService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *MotorcycleHandler {
	return &MotorcycleHandler{
		motorcycleService: motorcycleService,
		logger:            logger,
		metrics:           metrics,
	}
}

type MotorcycleRequest struct {
	Model        string  `json:"model" binding:"required" example:"CG 160 Titan"`
	Year         int     `json:"year" binding:"required" example:"2024"`
	Color        string  `json:"color" example:"red"`
	Chassis      string  `json:"chassis" binding:"required" example:"9C2KC1670LR000001"`
	Branch       string  `json:"branch" example:"Centro"`
	Financing    bool    `json:"financing"`
	PurchaseCost float64 `json:"purchase_cost"`
	Repasse      float64 `json:"repasse"`
	FuelCost     float64 `json:"fuel_cost"`
}

type UpdateMotorcycleRequest struct {
	Model        *string  `json:"model,omitempty"`
	Year         *int     `json:"year,omitempty"`
	Color        *string  `json:"color,omitempty"`
	Financing    *bool    `json:"financing,omitempty"`
	PurchaseCost *float64 `json:"purchase_cost,omitempty"`
	Repasse      *float64 `json:"repasse,omitempty"`
	FuelCost     *float64 `json:"fuel_cost,omitempty"`
}

type SellMotorcycleRequest struct {
	MotorcycleID uuid.UUID       `json:"motorcycle_id" binding:"required"`
	Customer     CustomerRequest `json:"customer"`
	Branch       string          `json:"branch"`
	Valor        float64         `json:"valor" binding:"min=0"`
	GiftHelmet   bool            `json:"gift_helmet"`
}

type SellMotorcycleResponse struct {
	Message string    `json:"message"`
	SaleID  uuid.UUID `json:"sale_id"`
}

// @Summary Register a motorcycle
// @Tags motorcycles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body MotorcycleRequest true "Motorcycle data"
// @Success 201 {object} domain.Motorcycle "Motorcycle registered"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /motorcycles [post]
func (h *MotorcycleHandler) CreateMotorcycle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreateMotorcycle", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create motorcycle", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	branch := req.Branch
	if !payload.SeesAllBranches() || branch == "" {
		branch = payload.Branch
	}

	m := &domain.Motorcycle{
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		Chassis:      req.Chassis,
		Branch:       branch,
		Financing:    req.Financing,
		PurchaseCost: req.PurchaseCost,
		Repasse:      req.Repasse,
		FuelCost:     req.FuelCost,
	}

	created, err := h.motorcycleService.CreateMotorcycle(c.Request.Context(), m)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary List motorcycles
// @Tags motorcycles
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Param status query string false "Status filter (AVAILABLE or SOLD)"
// @Success 200 {array} domain.Motorcycle
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /motorcycles [get]
func (h *MotorcycleHandler) ListMotorcycles(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	branch := branchScope(payload, c.Query("branch"))
	status := domain.MotorcycleStatus(c.Query("status"))

	motorcycles, err := h.motorcycleService.ListMotorcycles(c.Request.Context(), branch, status)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list motorcycles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"motorcycles": motorcycles, "count": len(motorcycles)})
}

// @Summary Get a motorcycle
// @Tags motorcycles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Motorcycle ID"
// @Success 200 {object} domain.Motorcycle
// @Failure 404 {object} errorResponse "Motorcycle not found"
// @Router /motorcycles/{id} [get]
func (h *MotorcycleHandler) GetMotorcycle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	m, err := h.motorcycleService.GetMotorcycleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary Update a motorcycle
// @Tags motorcycles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Motorcycle ID"
// @Param request body UpdateMotorcycleRequest true "Fields to update"
// @Success 200 {object} domain.Motorcycle
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /motorcycles/{id} [put]
func (h *MotorcycleHandler) UpdateMotorcycle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.motorcycleService.GetMotorcycleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	var req UpdateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Model != nil {
		existing.Model = *req.Model
	}
	if req.Year != nil {
		existing.Year = *req.Year
	}
	if req.Color != nil {
		existing.Color = *req.Color
	}
	if req.Financing != nil {
		existing.Financing = *req.Financing
	}
	if req.PurchaseCost != nil {
		existing.PurchaseCost = *req.PurchaseCost
	}
	if req.Repasse != nil {
		existing.Repasse = *req.Repasse
	}
	if req.FuelCost != nil {
		existing.FuelCost = *req.FuelCost
	}

	updated, err := h.motorcycleService.UpdateMotorcycle(c.Request.Context(), existing)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Update failed")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete a motorcycle
// @Tags motorcycles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Motorcycle ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponse "Motorcycle not found"
// @Router /motorcycles/{id} [delete]
func (h *MotorcycleHandler) DeleteMotorcycle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.motorcycleService.DeleteMotorcycle(c.Request.Context(), c.Param("id")); err != nil {
		newErrorResponse(c, http.StatusNotFound, "Motorcycle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Motorcycle deleted"})
}

// @Summary Sell a motorcycle
// @Description Atomically transitions the motorcycle from AVAILABLE to SOLD and records the sale
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SellMotorcycleRequest true "Sale data"
// @Success 200 {object} SellMotorcycleResponse "Sale recorded"
// @Failure 400 {object} errorResponse "Motorcycle unavailable"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /sell-motorcycle [post]
func (h *MotorcycleHandler) SellMotorcycle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to SellMotorcycle", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SellMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in sell motorcycle", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	branch := req.Branch
	if !payload.SeesAllBranches() || branch == "" {
		branch = payload.Branch
	}

	sale := &domain.MotorcycleSale{
		MotorcycleID:  req.MotorcycleID,
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		CustomerTaxID: req.Customer.TaxID,
		Branch:        branch,
		Price:         req.Valor,
		GiftHelmet:    req.GiftHelmet,
	}

	created, err := h.motorcycleService.SellMotorcycle(c.Request.Context(), sale)
	if err != nil {
		h.logger.Error("Motorcycle sale failed", map[string]interface{}{
			"error":         err.Error(),
			"motorcycle_id": req.MotorcycleID,
		})
		newErrorResponse(c, saleErrorStatus(err), saleErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, SellMotorcycleResponse{
		Message: "motorcycle sold",
		SaleID:  created.ID,
	})
}
