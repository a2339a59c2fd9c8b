package webhook

import (
	"context"
	"net/http"

	"pet-grooming-scheduler/internal/platform/httpclient"
	"pet-grooming-scheduler/internal/platform/logger"
	"pet-grooming-scheduler/internal/ports/notify"
)

// Notifier reenvía los hooks de agendamiento a un endpoint externo
// (mensajería, cobros). Best-effort: un POST fallido se loguea y se pierde;
// el contrato es fire-and-forget.
type Notifier struct {
	client *httpclient.Client
	url    string
	log    logger.Logger
}

func New(url string, log logger.Logger) *Notifier {
	return &Notifier{
		client: httpclient.New(httpclient.DefaultTimeout),
		url:    url,
		log:    log,
	}
}

type hookPayload struct {
	Hook          string `json:"hook"`
	AppointmentID int64  `json:"appointment_id"`
	BookingType   string `json:"booking_type"`
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) {
	err := n.client.DoJSON(ctx, http.MethodPost, n.url, nil, hookPayload{
		Hook:          string(msg.Hook),
		AppointmentID: msg.AppointmentID,
		BookingType:   msg.BookingType,
	}, nil)
	if err != nil && n.log != nil {
		n.log.Warn("webhook notify failed", map[string]any{
			"hook":           string(msg.Hook),
			"appointment_id": msg.AppointmentID,
			"error":          err.Error(),
		})
	}
}
