package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/dto"
	"github.com/employee-api/internal/service"
)

const (
	serviceName    = "Employee Demo REST API Service"
	serviceVersion = "1.0"

	jsonContentType = "application/json"
	maxBodyBytes    = 1 << 20
)

type EmployeeHandler struct {
	empService service.EmployeeService
	logger     *slog.Logger
	routes     *mux.Router
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		logger:     logger,
	}
}

func (h *EmployeeHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.HealthResponse{Status: http.StatusOK, Message: "Healthy"})
}

func (h *EmployeeHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.IndexResponse{
		Name:    serviceName,
		Version: serviceVersion,
		Paths:   h.urlFor(r, routeListEmployees),
	})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.empService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SerializeAll(employees))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(r)
	if !ok {
		h.respondNotFound(w, mux.Vars(r)["id"])
		return
	}

	emp, found, err := h.empService.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if !found {
		h.respondNotFound(w, mux.Vars(r)["id"])
		return
	}

	h.respondJSON(w, http.StatusOK, dto.Serialize(emp))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := checkContentType(r, jsonContentType); err != nil {
		h.logger.WarnContext(r.Context(), "rejected content type", slog.Any("error", err))
		h.respondError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	var payload any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	// после объекта допускаются только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "invalid request body: must contain a single JSON value")
		return
	}

	var emp domain.Employee
	if err := dto.Deserialize(&emp, payload); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.empService.Create(r.Context(), &emp); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", h.urlFor(r, routeGetEmployee, "id", strconv.FormatInt(emp.ID, 10)))
	h.respondJSON(w, http.StatusCreated, dto.Serialize(&emp))
}

// Delete всегда отвечает 204, даже если сотрудника не было
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(r)
	if ok {
		if err := h.empService.Delete(r.Context(), id); err != nil {
			h.handleServiceError(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path))
}

func (h *EmployeeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusNotFound,
		fmt.Sprintf("%s was not found on this server", r.URL.Path))
}

// extractID: маршрут пропускает только цифры, но значение может не влезть в int64
func (h *EmployeeHandler) extractID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (h *EmployeeHandler) urlFor(r *http.Request, name string, pairs ...string) string {
	if h.routes == nil {
		return ""
	}
	route := h.routes.Get(name)
	if route == nil {
		return ""
	}
	u, err := route.URL(pairs...)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build url", slog.String("route", name), slog.Any("error", err))
		return ""
	}

	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}
	u.Host = r.Host
	return u.String()
}

func checkContentType(r *http.Request, want string) error {
	header := r.Header.Get("Content-Type")
	if header == "" {
		return fmt.Errorf("Content-Type must be %s", want)
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || mediaType != want {
		return fmt.Errorf("Content-Type must be %s", want)
	}
	return nil
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.respondError(w, http.StatusBadRequest, validationErr.Message)
	default:
		h.logger.ErrorContext(r.Context(), "internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *EmployeeHandler) respondNotFound(w http.ResponseWriter, id string) {
	h.respondError(w, http.StatusNotFound, fmt.Sprintf("Employee with id '%s' was not found.", id))
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
