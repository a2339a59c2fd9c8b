package subscriptions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-grooming-scheduler/internal/domain/appointments"
	"pet-grooming-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/subscriptions", func(sr chi.Router) {
		sr.Post("/", expandHandler(svc))
		sr.Get("/{subscriptionID}", getSubscriptionHandler(svc))
	})
}

type addOnRequest struct {
	Value float64 `json:"value"`
}

type extraRequest struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

type expandRequest struct {
	ClientID  int64   `json:"client_id"`
	PetIDs    []int64 `json:"pet_ids"`
	StartDate string  `json:"start_date"` // 2006-01-02
	Time      string  `json:"time"`       // 15:04
	Frequency string  `json:"frequency" enums:"weekly,biweekly"`

	AddOn           *addOnRequest `json:"add_on"`
	AddOnOccurrence int           `json:"add_on_occurrence"`

	Extra *extraRequest `json:"extra"`

	PerPetCycleValue float64 `json:"per_pet_cycle_value"`
	CycleTotalValue  float64 `json:"cycle_total_value"`
}

type subscriptionResponse struct {
	ID               int64     `json:"id"`
	ClientID         int64     `json:"client_id"`
	PetIDs           []int64   `json:"pet_ids"`
	Frequency        Frequency `json:"frequency"`
	StartDate        string    `json:"start_date"`
	Time             string    `json:"time"`
	BaseEventPrice   float64   `json:"base_event_price"`
	PerPetCycleValue float64   `json:"per_pet_cycle_value"`
	CycleTotalValue  float64   `json:"cycle_total_value"`
	AddOnValue       float64   `json:"add_on_value,omitempty"`
	AddOnOccurrence  int       `json:"add_on_occurrence"`
	ExtraDescription string    `json:"extra_description,omitempty"`
	ExtraValue       float64   `json:"extra_value,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type expandResponse struct {
	Subscription   subscriptionResponse `json:"subscription"`
	AppointmentIDs []int64              `json:"appointment_ids"`
	TransactionID  string               `json:"transaction_id"`
}

// expandHandler godoc
// @Summary Crear assinatura recurrente
// @Description Expande la assinatura en N atendimientos por pet (weekly=4, biweekly=2),
// @Description con el add-on asignado a una única visita del ciclo, y registra una
// @Description fila agregada em_aberto en el libro financiero.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param payload body expandRequest true "Datos de la assinatura; start_date en 2006-01-02"
// @Success 201 {object} expandResponse
// @Failure 400 {string} string "invalid json / fecha inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /subscriptions [post]
func expandHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req expandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// La fecha se parsea acá, una sola vez: una fecha rota es un 400
		// antes de cualquier escritura, nunca un salto parcial de pets.
		startDate, err := time.Parse(appointments.DateLayout, strings.TrimSpace(req.StartDate))
		if err != nil {
			http.Error(w, "start_date must be "+appointments.DateLayout, http.StatusBadRequest)
			return
		}

		in := ExpandInput{
			ClientID:         req.ClientID,
			PetIDs:           req.PetIDs,
			StartDate:        startDate,
			Time:             req.Time,
			Frequency:        Frequency(strings.TrimSpace(req.Frequency)),
			AddOnOccurrence:  req.AddOnOccurrence,
			PerPetCycleValue: req.PerPetCycleValue,
			CycleTotalValue:  req.CycleTotalValue,
		}
		if req.AddOn != nil {
			in.AddOn = &AddOnInput{Value: req.AddOn.Value}
		}
		if req.Extra != nil {
			in.Extra = &ExtraInput{Description: req.Extra.Description, Value: req.Extra.Value}
		}

		res, err := svc.Expand(r.Context(), in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, expandResponse{
			Subscription:   toSubscriptionResponse(res.Subscription),
			AppointmentIDs: res.AppointmentIDs,
			TransactionID:  res.TransactionID,
		})
	}
}

// getSubscriptionHandler godoc
// @Summary Obtener una assinatura
// @Tags subscriptions
// @Produce json
// @Param subscriptionID path int true "ID de la assinatura"
// @Success 200 {object} subscriptionResponse
// @Failure 404 {string} string "subscription not found"
// @Router /subscriptions/{subscriptionID} [get]
func getSubscriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "subscriptionID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid subscription id", http.StatusBadRequest)
			return
		}

		sub, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
	}
}

func toSubscriptionResponse(s Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:               s.ID,
		ClientID:         s.ClientID,
		PetIDs:           s.PetIDs,
		Frequency:        s.Frequency,
		StartDate:        s.StartDate.Format(appointments.DateLayout),
		Time:             s.Time,
		BaseEventPrice:   s.BaseEventPrice,
		PerPetCycleValue: s.PerPetCycleValue,
		CycleTotalValue:  s.CycleTotalValue,
		AddOnValue:       s.AddOnValue,
		AddOnOccurrence:  s.AddOnOccurrence,
		ExtraDescription: s.ExtraDescription,
		ExtraValue:       s.ExtraValue,
		CreatedAt:        s.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
