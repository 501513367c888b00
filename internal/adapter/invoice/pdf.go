package invoice

import (
	"bytes"
	"fmt"

	"github.com/motohub/dealership_service/internal/core/domain"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer produces the printable invoice for a cart sale.
type PDFRenderer struct {
	companyName string
}

func NewPDFRenderer(companyName string) *PDFRenderer {
	if companyName == "" {
		companyName = "MotoHub"
	}
	return &PDFRenderer{companyName: companyName}
}

func (r *PDFRenderer) RenderCartSale(sale *domain.CartSale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", sale.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Branch: %s", sale.Branch))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice: %s", sale.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", sale.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Customer")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, sale.CustomerName)
	pdf.Ln(5)
	if sale.CustomerPhone != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Phone: %s", sale.CustomerPhone))
		pdf.Ln(5)
	}
	if sale.CustomerTaxID != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Tax ID: %s", sale.CustomerTaxID))
		pdf.Ln(5)
	}
	if sale.IsRevision {
		pdf.Cell(0, 5, fmt.Sprintf("Revision: %s / %s", sale.RevisionModel, sale.RevisionChassis))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Code", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Unit price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range sale.Items {
		pdf.CellFormat(70, 7, item.PartName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, item.PartCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Subtotal), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", sale.Total), "1", 1, "R", false, 0, "")

	if sale.PaymentMethod != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Payment: %s", sale.PaymentMethod))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
