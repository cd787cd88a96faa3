package http

import (
	"net/http"

	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

type CronHandler struct {
	Reminders *service.ReminderService
}

// ServeHTTP godoc
//
//	@Summary		Send Reminders
//	@Description	Texts every volunteer of events starting within the reminder window. Called by an external scheduler.
//	@Tags			Cron
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	rallysdk.ReminderRunResponse
//	@Failure		401	{object}	rallysdk.APIError
//	@Router			/cron/reminders [post].
func (h *CronHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reminders.Run(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rallysdk.ReminderRunResponse{
		Events: report.Events,
		Sent:   report.Sent,
		Failed: report.Failed,
	})
}
