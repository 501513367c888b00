package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	invoiceRenderer ports.InvoiceRenderer
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

func NewCheckoutHandler(
	checkoutService *services.CheckoutService,
	invoiceRenderer ports.InvoiceRenderer,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		invoiceRenderer: invoiceRenderer,
		logger:          logger,
		metrics:         metrics,
	}
}

type CheckoutItemRequest struct {
	PartID    uuid.UUID `json:"part_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice float64   `json:"unit_price" binding:"min=0"`
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	TaxID string `json:"tax_id"`
}

type CheckoutRequest struct {
	Customer        CustomerRequest       `json:"customer"`
	Branch          string                `json:"branch"`
	Items           []CheckoutItemRequest `json:"items"`
	PaymentMethod   string                `json:"payment_method"`
	IsRevision      bool                  `json:"is_revision"`
	RevisionModel   string                `json:"revision_model"`
	RevisionChassis string                `json:"revision_chassis"`
}

type CheckoutResponse struct {
	SaleID uuid.UUID `json:"sale_id"`
	Total  float64   `json:"total"`
}

// @Summary Checkout a cart
// @Description Converts a shopping cart into a sale and deducts stock as one atomic unit
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Cart data"
// @Success 200 {object} CheckoutResponse "Sale recorded"
// @Failure 400 {object} errorResponse "Validation or stock error"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to Checkout", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in checkout", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	branch := req.Branch
	if !payload.SeesAllBranches() || branch == "" {
		branch = payload.Branch
	}

	sale := &domain.CartSale{
		CustomerName:    req.Customer.Name,
		CustomerPhone:   req.Customer.Phone,
		CustomerTaxID:   req.Customer.TaxID,
		PaymentMethod:   req.PaymentMethod,
		Branch:          branch,
		IsRevision:      req.IsRevision,
		RevisionModel:   req.RevisionModel,
		RevisionChassis: req.RevisionChassis,
	}
	for _, item := range req.Items {
		sale.Items = append(sale.Items, &domain.CartSaleItem{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	created, err := h.checkoutService.Checkout(c.Request.Context(), sale)
	if err != nil {
		h.logger.Error("Checkout failed", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		newErrorResponse(c, saleErrorStatus(err), saleErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{
		SaleID: created.ID,
		Total:  created.Total,
	})
}

// @Summary List cart sales
// @Description Lists cart sales for the caller's branch, or any branch for head office
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {array} domain.CartSale
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /sales [get]
func (h *CheckoutHandler) ListCartSales(c *gin.Context) {
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

	sales, err := h.checkoutService.ListCartSales(c.Request.Context(), branch)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}

// @Summary Download sale invoice
// @Description Renders the printable PDF invoice for a cart sale
// @Tags sales
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Sale ID"
// @Success 200 {file} binary "PDF invoice"
// @Failure 404 {object} errorResponse "Sale not found"
// @Router /sales/{id}/invoice [get]
func (h *CheckoutHandler) GetInvoice(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	saleID := c.Param("id")
	sale, err := h.checkoutService.GetCartSaleByID(c.Request.Context(), saleID)
	if err != nil {
		newErrorResponse(c, http.StatusNotFound, "Sale not found")
		return
	}

	if !payload.SeesAllBranches() && sale.Branch != payload.Branch {
		h.logger.Warn("Access denied to invoice", map[string]interface{}{
			"sale_id":   saleID,
			"requester": payload.Username,
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	pdfBytes, err := h.invoiceRenderer.RenderCartSale(sale)
	if err != nil {
		h.logger.Error("Failed to render invoice", map[string]interface{}{
			"error":   err.Error(),
			"sale_id": saleID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", sale.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
