package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Catalog) {
	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createServiceHandler(svc))
		sr.Get("/", listServicesHandler(svc))
		sr.Get("/{serviceID}", getServiceHandler(svc))
	})
}

type createServiceRequest struct {
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	DefaultRecurring bool    `json:"default_recurring"`
}

type serviceResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	DefaultRecurring bool      `json:"default_recurring"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// createServiceHandler godoc
// @Summary Crear servicio del catálogo
// @Tags services
// @Accept json
// @Produce json
// @Param payload body createServiceRequest true "Datos del servicio"
// @Success 201 {object} serviceResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /services [post]
func createServiceHandler(svc *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.Create(r.Context(), CreateInput{
			Name:             req.Name,
			Price:            req.Price,
			DefaultRecurring: req.DefaultRecurring,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toServiceResponse(s))
	}
}

// listServicesHandler godoc
// @Summary Listar servicios del catálogo
// @Tags services
// @Produce json
// @Param all query bool false "Incluir servicios inactivos"
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(svc *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		onlyActive := r.URL.Query().Get("all") == ""
		items, err := svc.List(r.Context(), onlyActive)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getServiceHandler godoc
// @Summary Obtener un servicio
// @Tags services
// @Produce json
// @Param serviceID path int true "ID del servicio"
// @Success 200 {object} serviceResponse
// @Failure 404 {string} string "service not found"
// @Router /services/{serviceID} [get]
func getServiceHandler(svc *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid service id", http.StatusBadRequest)
			return
		}

		s, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(s))
	}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{
		ID:               s.ID,
		Name:             s.Name,
		Price:            s.Price,
		DefaultRecurring: s.DefaultRecurring,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo,
// igual que en el resto del código: todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
