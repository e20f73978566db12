package health

import (
	"net/http"

	"creditdesk/internal/repositories/sqlconnect"
	"creditdesk/pkg/utils"
)

// Handler reports liveness and database reachability. It sits outside the
// JWT middleware.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	dbStatus := "up"
	if sqlconnect.DB == nil {
		dbStatus = "down"
	} else if err := sqlconnect.DB.PingContext(r.Context()); err != nil {
		dbStatus = "down"
	}

	code := http.StatusOK
	status := "ok"
	if dbStatus != "up" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}

	utils.WriteJSONStatus(w, code, struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}{
		Status:   status,
		Database: dbStatus,
	})
}
