package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"carewatch/internal/domain"
	"carewatch/internal/service"

	"go.uber.org/zap"
)

// OverviewHandler 班次总览与进度 Handler
type OverviewHandler struct {
	svc    *service.MonitorService
	logger *zap.Logger
}

// NewOverviewHandler 创建总览 Handler
func NewOverviewHandler(svc *service.MonitorService, logger *zap.Logger) *OverviewHandler {
	return &OverviewHandler{svc: svc, logger: logger}
}

// GetOverview GET /care/api/v1/overview
func (h *OverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.GetOverview(r.Context())
	if err != nil {
		h.logger.Error("Failed to build overview", zap.Error(err))
		writeError(w, err)
		return
	}
	writeOK(w, overview)
}

// GetDailyProgress GET /care/api/v1/progress/daily
func (h *OverviewHandler) GetDailyProgress(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.svc.DailyProgress())
}

// GetWeeklyProgress GET /care/api/v1/progress/weekly?goal=35
func (h *OverviewHandler) GetWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	goal := 0
	if raw := r.URL.Query().Get("goal"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid goal: %v", err))
			return
		}
		goal = parsed
	}
	writeOK(w, h.svc.GetWeeklyProgress(goal))
}

// ExportShiftReport GET /care/api/v1/progress/export
// 导出班次报表 Excel（排程 + 任务清单 + 进度汇总）
func (h *OverviewHandler) ExportShiftReport(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.GetOverview(r.Context())
	if err != nil {
		h.logger.Error("Failed to build overview for export", zap.Error(err))
		writeError(w, err)
		return
	}

	todos := h.svc.Todos()
	rows := make([]todoRow, 0, len(todos))
	for _, t := range todos {
		rows = append(rows, todoRow{
			Title:     t.Title,
			Assignee:  t.Assignee,
			DueAt:     t.DueAt,
			Completed: t.Completed,
		})
	}

	excelData, err := GenerateShiftReport(overview, h.svc.DailyProgress(), rows)
	if err != nil {
		h.logger.Error("GenerateShiftReport failed", zap.Error(err))
		writeError(w, fmt.Errorf("failed to generate report: %w", err))
		return
	}

	filename := fmt.Sprintf("shift-report-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(excelData)
}
