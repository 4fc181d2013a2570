package httpapi

import (
	"encoding/json"
	"net/http"

	"carewatch/internal/domain"
	"carewatch/internal/service"

	"go.uber.org/zap"
)

// HandoverHandler 交接班备注 Handler
type HandoverHandler struct {
	svc    *service.MonitorService
	logger *zap.Logger
}

// NewHandoverHandler 创建交接班 Handler
func NewHandoverHandler(svc *service.MonitorService, logger *zap.Logger) *HandoverHandler {
	return &HandoverHandler{svc: svc, logger: logger}
}

// appendNoteRequest 创建备注请求（id/timestamp 由服务端分配，不接受调用方提供）
type appendNoteRequest struct {
	Priority string `json:"priority"`
	Content  string `json:"content"`
	Author   string `json:"author"`
}

// ServeHTTP 实现 http.Handler 接口
func (h *HandoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListNotes(w, r)
	case http.MethodPost:
		h.AppendNote(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ListNotes GET /care/api/v1/handover?priority=urgent
func (h *HandoverHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	urgentOnly := r.URL.Query().Get("priority") == domain.PriorityUrgent

	notes := h.svc.Notes(urgentOnly)
	if notes == nil {
		notes = []domain.HandoverNote{}
	}
	writeOK(w, notes)
}

// AppendNote POST /care/api/v1/handover
func (h *HandoverHandler) AppendNote(w http.ResponseWriter, r *http.Request) {
	var req appendNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}

	note, err := h.svc.AppendNote(r.Context(), req.Priority, req.Content, req.Author)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, note)
}
