package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterCareRoutes 注册监护服务路由
func (r *Router) RegisterCareRoutes(
	overview *OverviewHandler,
	vitalsH *VitalsHandler,
	todos *TodosHandler,
	handoverH *HandoverHandler,
) {
	r.Handle("/care/api/v1/overview", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		overview.GetOverview(w, req)
	})

	r.Handle("/care/api/v1/progress/daily", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		overview.GetDailyProgress(w, req)
	})

	r.Handle("/care/api/v1/progress/weekly", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		overview.GetWeeklyProgress(w, req)
	})

	r.Handle("/care/api/v1/progress/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		overview.ExportShiftReport(w, req)
	})

	r.Handle("/care/api/v1/vitals", vitalsH.ServeHTTP)
	r.Handle("/care/api/v1/vitals/", vitalsH.ServeHTTP)

	r.Handle("/care/api/v1/todos", todos.ServeHTTP)
	r.Handle("/care/api/v1/todos/", todos.ServeHTTP)

	r.Handle("/care/api/v1/handover", handoverH.ServeHTTP)
}
