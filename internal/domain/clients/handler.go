package clients

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/domain/finance"
	"pet-grooming-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, resolver *finance.Resolver) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc, resolver))
		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Patch("/{clientID}", updateClientHandler(svc))
	})
}

type createClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type updateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	// Solo en listados con with_balance=1
	HasPendingBalance *bool                 `json:"has_pending_balance,omitempty"`
	PendingBalance    []finance.Transaction `json:"pending_balance,omitempty"`
}

// createClientHandler godoc
// @Summary Crear cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body createClientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Description Lista los clientes. Con with_balance=1 anota cada cliente con su
// @Description saldo pendiente (filas em_aberto del libro financiero). Los lookups
// @Description se cachean por request para no repetir consultas por cliente.
// @Tags clients
// @Produce json
// @Param with_balance query bool false "Anotar saldo pendiente por cliente"
// @Success 200 {array} clientResponse
// @Failure 401 {string} string "unauthorized"
// @Router /clients [get]
func listClientsHandler(svc *Service, resolver *finance.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		withBalance := r.URL.Query().Get("with_balance") != ""

		// Cache por request: un lookup por cliente como máximo.
		var cache *finance.BalanceCache
		if withBalance {
			cache = finance.NewBalanceCache(resolver)
		}

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			resp := toClientResponse(c)
			if withBalance {
				rows, err := cache.Resolve(r.Context(), c.ID)
				if err != nil {
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				has := len(rows) > 0
				resp.HasPendingBalance = &has
				resp.PendingBalance = rows
			}
			out = append(out, resp)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getClientHandler godoc
// @Summary Obtener un cliente
// @Tags clients
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := parseClientID(r)
		if err != nil {
			http.Error(w, "invalid client id", http.StatusBadRequest)
			return
		}

		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateClientHandler godoc
// @Summary Editar un cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Param payload body updateClientRequest true "Campos a editar (parcial)"
// @Success 200 {object} clientResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID} [patch]
func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := parseClientID(r)
		if err != nil {
			http.Error(w, "invalid client id", http.StatusBadRequest)
			return
		}

		var req updateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), id, UpdateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		})
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

func parseClientID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "clientID"), 10, 64)
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
