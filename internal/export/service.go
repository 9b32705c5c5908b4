package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lawnquote/estimates-engine/internal/estimate"
)

// Service produces XLSX bytes for estimates.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// EstimateXLSX returns an XLSX workbook (as bytes) for the estimate.
func (s *Service) EstimateXLSX(res estimate.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Estimate"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Description",
		"Quantity",
		"Unit Price",
		"Total",
		"Notes",
		"Matched Material",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, item := range res.LineItems {
		write(1, row, item.Description)
		write(2, row, item.Quantity)
		write(3, row, fmt.Sprintf("%.2f", item.UnitPrice))
		write(4, row, fmt.Sprintf("%.2f", item.Total))
		write(5, row, truncate(item.Notes, 140))
		write(6, row, item.MatchedMaterialID)
		row++
	}

	// grand total row
	write(1, row, "Total")
	write(4, row, fmt.Sprintf("%.2f", res.TotalPrice))

	_ = f.SetColWidth(sheet, "A", "A", 36) // description
	_ = f.SetColWidth(sheet, "B", "D", 12) // numbers
	_ = f.SetColWidth(sheet, "E", "E", 48) // notes
	_ = f.SetColWidth(sheet, "F", "F", 38) // material id

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(res.LineItems),
		"total_price", res.TotalPrice,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
