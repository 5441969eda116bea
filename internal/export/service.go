package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ordermate/ordermate/internal/repository"
)

// Service is a tiny façade over the orders repository that produces XLSX
// bytes for dashboard exports.
type Service struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

func NewService(orders repository.OrderRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orders: orders, logger: logger}
}

// ExportOrdersXLSX returns an XLSX workbook (as bytes) for all orders, newest
// first, one row per order with product lines flattened into a single cell.
func (s *Service) ExportOrdersXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Time",
		"Order Link",
		"Customer",
		"Email",
		"Products",
		"Total Amount",
		"Status",
		"AI Processed",
		"AI Confidence",
		"Requires Review",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, o := range orders {
		lines := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			lines = append(lines, fmt.Sprintf("%s x%d @ %.2f", p.Name, p.Quantity, p.Price))
		}

		total := ""
		if o.TotalAmount != nil {
			total = fmt.Sprintf("%.2f", *o.TotalAmount)
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, o.Date)
		write(2, o.Time)
		write(3, o.OrderLink)
		write(4, o.Name)
		write(5, o.Email)
		write(6, strings.Join(lines, "; "))
		write(7, total)
		write(8, o.Status)
		write(9, o.AIProcessed)
		write(10, o.AIConfidence)
		write(11, o.RequiresReview)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "D", "E", 26)
	_ = f.SetColWidth(sheet, "F", "F", 60)
	_ = f.SetColWidth(sheet, "G", "K", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(orders),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
