package finance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pet-grooming-scheduler/internal/domain/clients"
	"pet-grooming-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, resolver *Resolver, clientsSvc *clients.Service) {
	r.Get("/clients/{clientID}/balance", balanceHandler(resolver, clientsSvc))
}

type balanceResponse struct {
	ClientID     int64         `json:"client_id"`
	Transactions []Transaction `json:"transactions"`
	Total        float64       `json:"total"`
}

// balanceHandler godoc
// @Summary Saldo pendiente de un cliente
// @Description Devuelve las filas em_aberto del libro financiero del cliente y el
// @Description total sumado. Cliente sin deuda => lista vacía y total 0.
// @Tags finance
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Success 200 {object} balanceResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID}/balance [get]
func balanceHandler(resolver *Resolver, clientsSvc *clients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		clientID, err := strconv.ParseInt(chi.URLParam(r, "clientID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid client id", http.StatusBadRequest)
			return
		}
		if _, err := clientsSvc.GetByID(r.Context(), clientID); err != nil {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}

		rows, err := resolver.Resolve(r.Context(), clientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, balanceResponse{
			ClientID:     clientID,
			Transactions: rows,
			Total:        Total(rows),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
