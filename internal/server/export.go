package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ordermate/ordermate/internal/export"
)

type ExportHandler struct {
	svc    *export.Service
	logger *slog.Logger
}

func NewExportHandler(svc *export.Service, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// Orders streams all orders as an XLSX workbook.
func (h *ExportHandler) Orders(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportOrdersXLSX(r.Context())
	if err != nil {
		h.logger.Error("orders export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
