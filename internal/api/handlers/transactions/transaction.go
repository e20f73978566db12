package transactions

import (
	"encoding/json"
	"net/http"

	"creditdesk/internal/api/handlers"
	"creditdesk/internal/models"
	"creditdesk/internal/views"
	"creditdesk/internal/workflow"
	"creditdesk/pkg/utils"

	"github.com/shopspring/decimal"
)

var engine *workflow.Engine

// Configure wires the workflow engine the handlers resolve against.
func Configure(e *workflow.Engine) {
	engine = e
}

// FUNC TO GET ALL TRANSACTIONS (ADMIN)
func GetAllTransactions(w http.ResponseWriter, r *http.Request) {
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
	if identity.Role != models.RoleAdmin {
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	}

	txs, err := engine.List(r.Context(), identity)
	if err != nil {
		handlers.WriteWorkflowError(w, err)
		return
	}

	txs, ok = applySorting(w, r, txs)
	if !ok {
		return
	}

	writeCollection(w, txs)
}

// FUNC TO GET ONE USER'S TRANSACTIONS
func GetUserTransactions(w http.ResponseWriter, r *http.Request) {
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

	owner := r.PathValue("userId")
	if owner == "" {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	txs, err := engine.ListOwner(r.Context(), identity, owner)
	if err != nil {
		handlers.WriteWorkflowError(w, err)
		return
	}

	txs, ok = applySorting(w, r, txs)
	if !ok {
		return
	}

	writeCollection(w, txs)
}

// FUNC TO CREATE A TRANSACTION REQUEST
func CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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

	type request struct {
		User        string          `json:"user"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// The owner comes from the verified token. A body claiming a different
	// owner is rejected outright.
	if req.User != "" && req.User != identity.ID {
		utils.WriteError(w, "cannot create transactions for another user", http.StatusForbidden)
		return
	}

	tx, err := engine.Create(r.Context(), identity, req.Amount, req.Description)
	if err != nil {
		handlers.WriteWorkflowError(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{
		Status: "success",
		Data:   tx,
	})
}

// FUNC TO APPROVE A PENDING TRANSACTION
func ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	decideTransaction(w, r, models.StatusApproved)
}

// FUNC TO REJECT A PENDING TRANSACTION
func RejectTransaction(w http.ResponseWriter, r *http.Request) {
	decideTransaction(w, r, models.StatusRejected)
}

func decideTransaction(w http.ResponseWriter, r *http.Request, target models.TransactionStatus) {
	if r.Method != http.MethodPatch {
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

	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	tx, err := engine.Transition(r.Context(), identity, id, target)
	if err != nil {
		handlers.WriteWorkflowError(w, err)
		return
	}

	utils.WriteJSON(w, struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}{
		Status: "success",
		Data:   tx,
	})
}

func applySorting(w http.ResponseWriter, r *http.Request, txs []models.Transaction) ([]models.Transaction, bool) {
	key, dir, ok := handlers.SortParams(r)
	if !ok {
		utils.WriteError(w, "invalid sort parameters", http.StatusBadRequest)
		return nil, false
	}
	if key != "" {
		txs = views.Sort(txs, key, dir)
	}
	return txs, true
}

func writeCollection(w http.ResponseWriter, txs []models.Transaction) {
	if txs == nil {
		txs = []models.Transaction{}
	}

	utils.WriteJSON(w, struct {
		Status string               `json:"status"`
		Count  int                  `json:"count"`
		Data   []models.Transaction `json:"data"`
	}{
		Status: "success",
		Count:  len(txs),
		Data:   txs,
	})
}
