package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"
)

type ReportService struct {
	saleRepo ports.SaleRepository
	logger   ports.LoggerPort
}

func NewReportService(saleRepo ports.SaleRepository, logger ports.LoggerPort) *ReportService {
	return &ReportService{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// SalesSummary aggregates cart and motorcycle sales per branch. The net
// figure uses repasse instead of purchase cost only when repasse > 0.
func (s *ReportService) SalesSummary(ctx context.Context, branch string) ([]*domain.BranchSummary, error) {
	cartSales, err := s.saleRepo.ListCartSales(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list cart sales for summary", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	records, err := s.saleRepo.ListMotorcycleSaleRecords(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list motorcycle sales for summary", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	byBranch := make(map[string]*domain.BranchSummary)
	get := func(b string) *domain.BranchSummary {
		summary, ok := byBranch[b]
		if !ok {
			summary = &domain.BranchSummary{Branch: b}
			byBranch[b] = summary
		}
		return summary
	}

	for _, sale := range cartSales {
		summary := get(sale.Branch)
		summary.CartSalesCount++
		summary.CartSalesTotal += sale.Total
		summary.NetTotal += sale.Total
	}

	for _, record := range records {
		summary := get(record.Sale.Branch)
		summary.MotorcycleSalesCount++
		summary.MotorcycleSalesTotal += record.Sale.Price
		summary.NetTotal += record.Sale.NetValue(record.Motorcycle)
	}

	summaries := make([]*domain.BranchSummary, 0, len(byBranch))
	for _, summary := range byBranch {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Branch < summaries[j].Branch
	})

	return summaries, nil
}

// ExportSalesCSV writes every cart and motorcycle sale visible to the
// caller as CSV rows.
func (s *ReportService) ExportSalesCSV(ctx context.Context, branch string, w io.Writer) error {
	cartSales, err := s.saleRepo.ListCartSales(ctx, branch)
	if err != nil {
		return err
	}

	motorcycleSales, err := s.saleRepo.ListMotorcycleSales(ctx, branch)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "id", "date", "branch", "customer", "total", "payment_method"}); err != nil {
		return err
	}

	for _, sale := range cartSales {
		record := []string{
			"cart",
			sale.ID.String(),
			sale.CreatedAt.Format("2006-01-02 15:04:05"),
			sale.Branch,
			sale.CustomerName,
			strconv.FormatFloat(sale.Total, 'f', 2, 64),
			sale.PaymentMethod,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for _, sale := range motorcycleSales {
		record := []string{
			"motorcycle",
			sale.ID.String(),
			sale.CreatedAt.Format("2006-01-02 15:04:05"),
			sale.Branch,
			sale.CustomerName,
			strconv.FormatFloat(sale.Price, 'f', 2, 64),
			"",
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

func (s *ReportService) ListMotorcycleSales(ctx context.Context, branch string) ([]*domain.MotorcycleSale, error) {
	sales, err := s.saleRepo.ListMotorcycleSales(ctx, branch)
	if err != nil {
		s.logger.Error("Failed to list motorcycle sales", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		return nil, err
	}

	return sales, nil
}
