package appointments

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
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", bookHandler(svc))
		ar.Get("/agenda", agendaHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Get("/{appointmentID}/group", groupHandler(svc))
		ar.Post("/{appointmentID}/status", setStatusHandler(svc, resolver))
	})
}

type bookRequest struct {
	ClientID   int64   `json:"client_id"`
	PetIDs     []int64 `json:"pet_ids"`
	Date       string  `json:"date"` // 2006-01-02
	Time       string  `json:"time"` // 15:04
	ServiceIDs []int64 `json:"service_ids"`
	Notes      string  `json:"notes"`
}

type appointmentResponse struct {
	ID             int64       `json:"id"`
	ClientID       int64       `json:"client_id"`
	PetIDs         []int64     `json:"pet_ids"`
	Date           string      `json:"date"`
	Time           string      `json:"time,omitempty"`
	Type           BookingType `json:"type"`
	Status         Status      `json:"status"`
	TotalValue     float64     `json:"total_value"`
	AddOnValue     float64     `json:"add_on_value,omitempty"`
	SubscriptionID *int64      `json:"subscription_id,omitempty"`
	Notes          string      `json:"notes,omitempty"`
}

type groupMemberResponse struct {
	ID     int64 `json:"id"`
	Anchor bool  `json:"anchor"`
}

type groupResponse struct {
	Signature string                `json:"signature"`
	Members   []groupMemberResponse `json:"members"`
	PetNames  []string              `json:"pet_names"`
	Total     float64               `json:"total"`
	ClientID  int64                 `json:"client_id"`
	Date      string                `json:"date"`
	Time      string                `json:"time,omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status" enums:"pending,finalized,finalized_and_paid,canceled"`
}

type setStatusResponse struct {
	Appointment appointmentResponse `json:"appointment"`

	// Aviso consultivo post-finalización: deuda abierta del cliente.
	// Nunca bloquea la transición, solo la anota.
	HasPendingBalance *bool                 `json:"has_pending_balance,omitempty"`
	PendingBalance    []finance.Transaction `json:"pending_balance,omitempty"`
}

type agendaResponse struct {
	Overdue        []appointmentResponse `json:"overdue"`
	FinalizedToday []appointmentResponse `json:"finalized_today"`
	Upcoming       []appointmentResponse `json:"upcoming"`
}

// bookHandler godoc
// @Summary Reservar atendimiento simple
// @Description Crea una reserva simple para uno o más pets del cliente. Una visita
// @Description multi-pet genera una fila por pet, todas con la misma fecha/hora.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body bookRequest true "Datos de la reserva; date en 2006-01-02, time en 15:04"
// @Success 201 {array} appointmentResponse
// @Failure 400 {string} string "invalid json / fecha inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [post]
func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req bookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(DateLayout, strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be "+DateLayout, http.StatusBadRequest)
			return
		}

		created, err := svc.Book(r.Context(), BookInput{
			ClientID:   req.ClientID,
			PetIDs:     req.PetIDs,
			Date:       date,
			Time:       req.Time,
			ServiceIDs: req.ServiceIDs,
			Notes:      req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out := make([]appointmentResponse, 0, len(created))
		for _, a := range created {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// getAppointmentHandler godoc
// @Summary Obtener un atendimiento
// @Tags appointments
// @Produce json
// @Param appointmentID path int true "ID del atendimiento"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := parseAppointmentID(r)
		if err != nil {
			http.Error(w, "invalid appointment id", http.StatusBadRequest)
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// groupHandler godoc
// @Summary Vista consolidada de visita multi-pet
// @Description Reconstruye el grupo al que pertenece el atendimiento (mismo cliente,
// @Description fecha, hora y firma de pets) y devuelve el total consolidado. Solo el
// @Description miembro anchor lleva la acción de cobro consolidado. 204 si no hay grupo.
// @Tags appointments
// @Produce json
// @Param appointmentID path int true "ID del atendimiento"
// @Success 200 {object} groupResponse
// @Success 204 {string} string "sin grupo"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID}/group [get]
func groupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := parseAppointmentID(r)
		if err != nil {
			http.Error(w, "invalid appointment id", http.StatusBadRequest)
			return
		}

		g, found, err := svc.FindGroup(r.Context(), id)
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := groupResponse{
			Signature: g.Signature,
			PetNames:  g.PetNames,
			Total:     g.Total,
			ClientID:  g.ClientID,
			Date:      g.Date.Format(DateLayout),
			Time:      g.Time,
		}
		for _, mid := range g.MemberIDs {
			resp.Members = append(resp.Members, groupMemberResponse{
				ID:     mid,
				Anchor: mid == g.AnchorID,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// setStatusHandler godoc
// @Summary Transicionar estado de un atendimiento
// @Description Aplica una transición de la máquina de estados. Al finalizar, la
// @Description respuesta anota el saldo pendiente del cliente (consultivo, no bloquea).
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path int true "ID del atendimiento"
// @Param payload body setStatusRequest true "Nuevo estado"
// @Success 200 {object} setStatusResponse
// @Failure 400 {string} string "estado desconocido"
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "transición ilegal"
// @Router /appointments/{appointmentID}/status [post]
func setStatusHandler(svc *Service, resolver *finance.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := parseAppointmentID(r)
		if err != nil {
			http.Error(w, "invalid appointment id", http.StatusBadRequest)
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, ok := ParseStatus(req.Status)
		if !ok {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}

		a, err := svc.SetStatus(r.Context(), id, st)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrBadState:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "appointment not found", http.StatusNotFound)
			}
			return
		}

		resp := setStatusResponse{Appointment: toAppointmentResponse(a)}

		// Al finalizar, avisar si el cliente tiene deuda abierta. Un error acá
		// no voltea la transición ya aplicada.
		if st == StatusFinalized || st == StatusFinalizedAndPaid {
			if rows, err := resolver.Resolve(r.Context(), a.ClientID); err == nil {
				has := len(rows) > 0
				resp.HasPendingBalance = &has
				resp.PendingBalance = rows
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// agendaHandler godoc
// @Summary Vista operativa particionada
// @Description Particiona los atendimientos vivos en overdue / finalized_today /
// @Description upcoming. Pagos y cancelados quedan afuera. now opcional (RFC3339).
// @Tags appointments
// @Produce json
// @Param now query string false "Instante de referencia (RFC3339); default reloj del servidor"
// @Success 200 {object} agendaResponse
// @Failure 400 {string} string "now inválido"
// @Router /appointments/agenda [get]
func agendaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.StaffID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var now time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("now")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "now must be RFC3339", http.StatusBadRequest)
				return
			}
			now = t
		}

		agenda, err := svc.Agenda(r.Context(), now)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, agendaResponse{
			Overdue:        toAppointmentResponses(agenda.Overdue),
			FinalizedToday: toAppointmentResponses(agenda.FinalizedToday),
			Upcoming:       toAppointmentResponses(agenda.Upcoming),
		})
	}
}

func parseAppointmentID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "appointmentID"), 10, 64)
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		ClientID:       a.ClientID,
		PetIDs:         a.PetIDs,
		Date:           a.Date.Format(DateLayout),
		Time:           a.Time,
		Type:           a.Type,
		Status:         a.Status,
		TotalValue:     a.TotalValue,
		AddOnValue:     a.AddOnValue,
		SubscriptionID: a.SubscriptionID,
		Notes:          a.Notes,
	}
}

func toAppointmentResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
