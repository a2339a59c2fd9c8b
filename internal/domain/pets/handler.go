package pets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/domain/clients"
	"pet-grooming-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, clientsSvc *clients.Service) {
	r.Route("/clients/{clientID}/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, clientsSvc))
		pr.Get("/", listPetsHandler(svc, clientsSvc))
	})
	r.Get("/pets/{petID}", getPetHandler(svc))
}

type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species" enums:"dog,cat"`
	Breed   string `json:"breed"`
	Sex     string `json:"sex" enums:"male,female,unknown"`
	Size    string `json:"size" enums:"small,medium,large"`
	Notes   string `json:"notes"`
}

type petResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	Breed     string    `json:"breed"`
	Sex       Sex       `json:"sex"`
	Size      Size      `json:"size"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// createPetHandler godoc
// @Summary Registrar pet de un cliente
// @Tags pets
// @Accept json
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Param payload body createPetRequest true "Datos del pet"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID}/pets [post]
func createPetHandler(svc *Service, clientsSvc *clients.Service) http.HandlerFunc {
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

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), clientID, CreateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Sex:     req.Sex,
			Size:    req.Size,
			Notes:   req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar pets de un cliente
// @Tags pets
// @Produce json
// @Param clientID path int true "ID del cliente"
// @Success 200 {array} petResponse
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID}/pets [get]
func listPetsHandler(svc *Service, clientsSvc *clients.Service) http.HandlerFunc {
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

		items, err := svc.ListByClient(r.Context(), clientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener un pet
// @Tags pets
// @Produce json
// @Param petID path int true "ID del pet"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		Size:      p.Size,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
