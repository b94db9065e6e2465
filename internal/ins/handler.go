package ins

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/twocheckout-go/internal/common"
	"github.com/noah-isme/twocheckout-go/internal/obs"
	"github.com/noah-isme/twocheckout-go/twocheckout"
)

// Handler verifies and records 2Checkout INS and return callbacks. The
// gateway authenticates itself with the MD5 hash in the key field; anything
// that fails that check is treated as forged and dropped.
type Handler struct {
	Client  *twocheckout.Client
	Logger  zerolog.Logger
	Metrics *obs.NotificationMetrics
}

// Handle processes one callback form post.
func (h Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Metrics.Record(obs.NotificationMalformed)
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "unable to parse callback form")
		return
	}
	form := r.PostForm
	if len(form) == 0 {
		form = r.Form
	}

	if !h.Client.VerifyNotification(form) {
		h.Metrics.Record(obs.NotificationRejected)
		h.Logger.Warn().
			Str("order_number", form.Get("order_number")).
			Str("remote_addr", r.RemoteAddr).
			Msg("notification hash mismatch")
		common.JSONError(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "hash verification failed")
		return
	}

	eventID := uuid.NewString()
	h.Metrics.Record(obs.NotificationAccepted)
	h.Logger.Info().
		Str("event_id", eventID).
		Str("message_type", form.Get("message_type")).
		Str("order_number", form.Get("order_number")).
		Str("invoice_id", form.Get("invoice_id")).
		Str("total", form.Get("total")).
		Msg("notification accepted")

	common.JSON(w, http.StatusOK, map[string]any{"status": "ok", "event_id": eventID})
}
