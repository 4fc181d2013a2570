package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"carewatch/internal/domain"
	"carewatch/internal/service"

	"go.uber.org/zap"
)

// VitalsHandler 生命体征录入/查询 Handler
type VitalsHandler struct {
	svc    *service.MonitorService
	logger *zap.Logger
}

// NewVitalsHandler 创建生命体征 Handler
func NewVitalsHandler(svc *service.MonitorService, logger *zap.Logger) *VitalsHandler {
	return &VitalsHandler{svc: svc, logger: logger}
}

// ServeHTTP 实现 http.Handler 接口
func (h *VitalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/care/api/v1/vitals" && r.Method == http.MethodPost:
		h.RecordObservation(w, r)
	case strings.HasPrefix(path, "/care/api/v1/vitals/") && r.Method == http.MethodGet:
		residentID := strings.TrimPrefix(path, "/care/api/v1/vitals/")
		if residentID == "" || strings.Contains(residentID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetHistory(w, r, residentID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// RecordObservation POST /care/api/v1/vitals
func (h *VitalsHandler) RecordObservation(w http.ResponseWriter, r *http.Request) {
	var obs domain.VitalObservation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		writeError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}

	if err := h.svc.RecordObservation(r.Context(), obs); err != nil {
		h.logger.Warn("Failed to record observation",
			zap.String("resident_id", obs.ResidentID),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	writeOK(w, obs)
}

// GetHistory GET /care/api/v1/vitals/{residentID}?from=RFC3339&to=RFC3339
func (h *VitalsHandler) GetHistory(w http.ResponseWriter, r *http.Request, residentID string) {
	from, err := parseTimeParam(r, "from")
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		writeError(w, err)
		return
	}

	history := h.svc.History(residentID, from, to)
	if history == nil {
		history = []domain.VitalObservation{}
	}
	writeOK(w, history)
}

// parseTimeParam 解析可选的 RFC3339 时间查询参数
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError("invalid %s: %v", name, err)
	}
	return &t, nil
}
