package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/middleware"
)

const (
	routeIndex          = "index"
	routeHealth         = "health"
	routeListEmployees  = "list_employees"
	routeCreateEmployee = "create_employee"
	routeGetEmployee    = "get_employee"
	routeDeleteEmployee = "delete_employee"
)

// Router настраивает маршруты API
type Router struct {
	mux        *mux.Router
	logger     *slog.Logger
	empHandler *EmployeeHandler
	cors       config.CORSConfig
	metrics    *middleware.Metrics
}

// NewRouter создаёт новый роутер; metrics может быть nil
func NewRouter(empHandler *EmployeeHandler, logger *slog.Logger, corsCfg config.CORSConfig, metrics *middleware.Metrics) *Router {
	return &Router{
		mux:        mux.NewRouter(),
		logger:     logger,
		empHandler: empHandler,
		cors:       corsCfg,
		metrics:    metrics,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	h := r.empHandler
	h.routes = r.mux

	r.mux.HandleFunc("/", h.Index).Methods(http.MethodGet).Name(routeIndex)
	r.mux.HandleFunc("/health", h.Health).Methods(http.MethodGet).Name(routeHealth)

	r.mux.HandleFunc("/employees", h.List).Methods(http.MethodGet).Name(routeListEmployees)
	r.mux.HandleFunc("/employees", h.Create).Methods(http.MethodPost).Name(routeCreateEmployee)
	r.mux.HandleFunc("/employees/{id:[0-9]+}", h.GetByID).Methods(http.MethodGet).Name(routeGetEmployee)
	r.mux.HandleFunc("/employees/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete).Name(routeDeleteEmployee)

	r.mux.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
	r.mux.NotFoundHandler = http.HandlerFunc(h.NotFound)

	if r.metrics != nil {
		r.mux.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
		r.mux.Use(r.metrics.Middleware)
	}

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	if r.cors.Enabled {
		handler = cors.New(cors.Options{
			AllowedOrigins: r.cors.AllowedOrigins,
			AllowedMethods: r.cors.AllowedMethods,
			AllowedHeaders: r.cors.AllowedHeaders,
		}).Handler(handler)
	}
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
