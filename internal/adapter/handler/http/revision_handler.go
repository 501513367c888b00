package http

import (
	"net/http"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type RevisionHandler struct {
	revisionService *services.RevisionService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

func NewRevisionHandler(
	revisionService *services.RevisionService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *RevisionHandler {
	return &RevisionHandler{
		revisionService: revisionService,
		logger:          logger,
		metrics:         metrics,
	}
}

type RevisionItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
}

type RevisionRequest struct {
	MotorcycleModel   string                `json:"motorcycle_model" binding:"required"`
	MotorcycleChassis string                `json:"motorcycle_chassis" binding:"required"`
	Customer          CustomerRequest       `json:"customer"`
	Branch            string                `json:"branch"`
	Notes             string                `json:"notes"`
	Items             []RevisionItemRequest `json:"items"`
}

// @Summary Open a revision order
// @Tags revisions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RevisionRequest true "Revision data"
// @Success 201 {object} domain.Revision "Revision opened"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /revisions [post]
func (h *RevisionHandler) CreateRevision(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreateRevision", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create revision", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	branch := req.Branch
	if !payload.SeesAllBranches() || branch == "" {
		branch = payload.Branch
	}

	revision := &domain.Revision{
		MotorcycleModel:   req.MotorcycleModel,
		MotorcycleChassis: req.MotorcycleChassis,
		CustomerName:      req.Customer.Name,
		CustomerPhone:     req.Customer.Phone,
		Branch:            branch,
		Notes:             req.Notes,
	}
	for _, item := range req.Items {
		revision.Items = append(revision.Items, &domain.RevisionItem{
			Description: item.Description,
			Price:       item.Price,
		})
	}

	created, err := h.revisionService.CreateRevision(c.Request.Context(), revision)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary List revisions
// @Tags revisions
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {array} domain.Revision
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /revisions [get]
func (h *RevisionHandler) ListRevisions(c *gin.Context) {
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

	revisions, err := h.revisionService.ListRevisions(c.Request.Context(), branch)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list revisions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"revisions": revisions, "count": len(revisions)})
}

// @Summary Get a revision
// @Tags revisions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Revision ID"
// @Success 200 {object} domain.Revision
// @Failure 404 {object} errorResponse "Revision not found"
// @Router /revisions/{id} [get]
func (h *RevisionHandler) GetRevision(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if _, exists := getAuthPayload(c, authorizationPayloadKey); !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	revision, err := h.revisionService.GetRevisionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Revision not found")
		return
	}

	c.JSON(http.StatusOK, revision)
}
