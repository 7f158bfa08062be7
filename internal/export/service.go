package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docfill/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for
// fill-status exports.
type Service struct {
	sessions     repository.SessionRepository
	placeholders repository.PlaceholderRepository
	logger       *slog.Logger
}

func NewService(sessions repository.SessionRepository, placeholders repository.PlaceholderRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sessions: sessions, placeholders: placeholders, logger: logger}
}

// ExportSessionXLSX returns an XLSX workbook (as bytes) listing every
// placeholder of the session in document order with its fill state.
func (s *Service) ExportSessionXLSX(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	start := time.Now()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	phs, err := s.placeholders.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query placeholders: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Placeholders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Key", "Type", "Hint", "Filled", "Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range phs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, p.Key)
		write(2, string(p.Type))
		write(3, truncate(p.Hint, 140))
		write(4, p.IsFilled)
		if p.Value != nil {
			write(5, *p.Value)
		} else {
			write(5, "")
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // key
	_ = f.SetColWidth(sheet, "B", "B", 12) // type
	_ = f.SetColWidth(sheet, "C", "C", 48) // hint
	_ = f.SetColWidth(sheet, "D", "D", 8)  // filled
	_ = f.SetColWidth(sheet, "E", "E", 32) // value

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"session_id", sessionID.String(),
		"filename", sess.Filename,
		"rows", len(phs),
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
