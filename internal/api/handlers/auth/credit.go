package auth

import (
	"net/http"

	"creditdesk/internal/api/handlers"
	"creditdesk/internal/workflow"
	"creditdesk/pkg/utils"
)

var engine *workflow.Engine

// Configure wires the workflow engine the handlers resolve against.
func Configure(e *workflow.Engine) {
	engine = e
}

// FUNC TO GET A USER'S AVAILABLE CREDIT
func GetUserCredit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if engine == nil {
		utils.Logger.Error("workflow engine is not configured")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID := r.PathValue("userId")
	if userID == "" {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	balance, err := engine.Credit(r.Context(), identity, userID)
	if err != nil {
		handlers.WriteWorkflowError(w, err)
		return
	}

	utils.WriteJSON(w, struct {
		Status string `json:"status"`
		Data   string `json:"data"`
	}{
		Status: "success",
		Data:   balance.StringFixed(2),
	})
}
