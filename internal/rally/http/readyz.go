package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/store"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/jwtx"
	"github.com/aussiebroadwan/rally/pkg/rallysdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe
//	@Description	Pings the database and checks the session signing key is loaded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	rallysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	rallysdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &rallysdk.HealthChecks{Database: "ok", Signer: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, rallysdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
