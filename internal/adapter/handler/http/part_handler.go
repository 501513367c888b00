package http

import (
	"net/http"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type PartHandler struct {
	partService *services.PartService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewPartHandler(
	partService *services.PartService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *PartHandler {
	return &PartHandler{
		partService: partService,
		logger:      logger,
		metrics:     metrics,
	}
}

type PartRequest struct {
	Name      string  `json:"name" binding:"required" example:"Oil filter"`
	Code      string  `json:"code" binding:"required" example:"FLT-001"`
	Quantity  int     `json:"quantity" binding:"min=0" example:"10"`
	Branch    string  `json:"branch" example:"Centro"`
	UnitPrice float64 `json:"unit_price" binding:"min=0" example:"35.90"`
}

type UpdatePartRequest struct {
	Name      *string  `json:"name,omitempty"`
	Code      *string  `json:"code,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

type TransferPartRequest struct {
	ToBranch string `json:"to_branch" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// @Summary Register a part
// @Tags parts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PartRequest true "Part data"
// @Success 201 {object} domain.Part "Part registered"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /parts [post]
func (h *PartHandler) CreatePart(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreatePart", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create part", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	branch := req.Branch
	if !payload.SeesAllBranches() || branch == "" {
		branch = payload.Branch
	}

	part := &domain.Part{
		Name:      req.Name,
		Code:      req.Code,
		Quantity:  req.Quantity,
		Branch:    branch,
		UnitPrice: req.UnitPrice,
	}

	created, err := h.partService.CreatePart(c.Request.Context(), part)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary List parts
// @Tags parts
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {array} domain.Part
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /parts [get]
func (h *PartHandler) ListParts(c *gin.Context) {
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

	parts, err := h.partService.ListParts(c.Request.Context(), branch)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"parts": parts, "count": len(parts)})
}

// @Summary Get a part
// @Tags parts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Part ID"
// @Success 200 {object} domain.Part
// @Failure 404 {object} errorResponse "Part not found"
// @Router /parts/{id} [get]
func (h *PartHandler) GetPart(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	part, err := h.partService.GetPartByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Part not found")
		return
	}

	c.JSON(http.StatusOK, part)
}

// @Summary Update a part
// @Tags parts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Part ID"
// @Param request body UpdatePartRequest true "Fields to update"
// @Success 200 {object} domain.Part
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /parts/{id} [put]
func (h *PartHandler) UpdatePart(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existing, err := h.partService.GetPartByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Part not found")
		return
	}

	var req UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Code != nil {
		existing.Code = *req.Code
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		existing.UnitPrice = *req.UnitPrice
	}

	updated, err := h.partService.UpdatePart(c.Request.Context(), existing)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Update failed")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete a part
// @Tags parts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Part ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponse "Part not found"
// @Router /parts/{id} [delete]
func (h *PartHandler) DeletePart(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.partService.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		newErrorResponse(c, http.StatusNotFound, "Part not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part deleted"})
}

// @Summary Transfer a part between branches
// @Description Moves stock of a part to another branch in one atomic unit
// @Tags parts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Part ID"
// @Param request body TransferPartRequest true "Transfer data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorResponse "Insufficient stock"
// @Router /parts/{id}/transfer [post]
func (h *PartHandler) TransferPart(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TransferPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	err := h.partService.TransferPart(c.Request.Context(), c.Param("id"), req.ToBranch, req.Quantity)
	if err != nil {
		newErrorResponse(c, saleErrorStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part transferred"})
}
