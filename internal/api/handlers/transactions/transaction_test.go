package transactions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"creditdesk/internal/api/handlers/transactions"
	"creditdesk/internal/models"
	"creditdesk/internal/workflow"
	"creditdesk/internal/workflow/workflowtest"
	"creditdesk/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userIdentity  = models.Identity{ID: "u-1", Role: models.RoleUser, Name: "Alice"}
	adminIdentity = models.Identity{ID: "a-1", Role: models.RoleAdmin, Name: "Root"}
)

func setupEngine(t *testing.T) *workflow.Engine {
	t.Helper()
	engine := workflow.NewEngine(workflowtest.NewInMemoryStore(), workflowtest.NewInMemoryLedger())
	transactions.Configure(engine)
	return engine
}

func authedRequest(method, target string, body string, identity models.Identity) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), utils.IdentityContextKey, identity)
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) models.Transaction {
	t.Helper()
	var resp struct {
		Status string             `json:"status"`
		Data   models.Transaction `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Data
}

// -- Create --

func TestCreateTransaction_Success(t *testing.T) {
	setupEngine(t)

	req := authedRequest(http.MethodPost, "/transaction/create",
		`{"user":"u-1","amount":20.00,"description":"lunch"}`, userIdentity)
	rec := httptest.NewRecorder()

	transactions.CreateTransaction(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	tx := decodeData(t, rec)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "u-1", tx.Owner)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateTransaction_OwnerComesFromToken(t *testing.T) {
	setupEngine(t)

	req := authedRequest(http.MethodPost, "/transaction/create",
		`{"user":"someone-else","amount":20.00,"description":""}`, userIdentity)
	rec := httptest.NewRecorder()

	transactions.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	setupEngine(t)

	cases := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount":0,"description":""}`},
		{"below minimum", `{"amount":0.001,"description":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/transaction/create", tc.body, userIdentity)
			rec := httptest.NewRecorder()

			transactions.CreateTransaction(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateTransaction_UnknownFields(t *testing.T) {
	setupEngine(t)

	req := authedRequest(http.MethodPost, "/transaction/create",
		`{"amount":5,"status":"approved"}`, userIdentity)
	rec := httptest.NewRecorder()

	transactions.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTransaction_NoSession(t *testing.T) {
	setupEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/transaction/create", strings.NewReader(`{"amount":5}`))
	rec := httptest.NewRecorder()

	transactions.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// -- Approve / Reject --

func createPending(t *testing.T, engine *workflow.Engine) models.Transaction {
	t.Helper()
	tx, err := engine.Create(context.Background(), userIdentity, decimal.RequireFromString("20.00"), "lunch")
	require.NoError(t, err)
	return tx
}

func TestApproveTransaction_Success(t *testing.T) {
	engine := setupEngine(t)
	tx := createPending(t, engine)

	req := authedRequest(http.MethodPatch, "/transaction/approve/"+tx.ID, "", adminIdentity)
	req.SetPathValue("id", tx.ID)
	rec := httptest.NewRecorder()

	transactions.ApproveTransaction(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeData(t, rec)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, tx.ID, updated.ID)
}

func TestRejectTransaction_ForbiddenForUser(t *testing.T) {
	engine := setupEngine(t)
	tx := createPending(t, engine)

	req := authedRequest(http.MethodPatch, "/transaction/reject/"+tx.ID, "", userIdentity)
	req.SetPathValue("id", tx.ID)
	rec := httptest.NewRecorder()

	transactions.RejectTransaction(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Status must be untouched.
	remaining, err := engine.List(context.Background(), userIdentity)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.StatusPending, remaining[0].Status)
}

func TestApproveTransaction_NotFound(t *testing.T) {
	setupEngine(t)

	req := authedRequest(http.MethodPatch, "/transaction/approve/missing", "", adminIdentity)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	transactions.ApproveTransaction(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApproveTransaction_DoubleDecisionConflicts(t *testing.T) {
	engine := setupEngine(t)
	tx := createPending(t, engine)

	for i, wantCode := range []int{http.StatusOK, http.StatusConflict} {
		req := authedRequest(http.MethodPatch, "/transaction/approve/"+tx.ID, "", adminIdentity)
		req.SetPathValue("id", tx.ID)
		rec := httptest.NewRecorder()

		transactions.ApproveTransaction(rec, req)
		assert.Equal(t, wantCode, rec.Code, "attempt %d", i+1)
	}
}

// -- Listing --

func TestGetAllTransactions_AdminOnly(t *testing.T) {
	engine := setupEngine(t)
	createPending(t, engine)

	req := authedRequest(http.MethodGet, "/transaction/", "", userIdentity)
	rec := httptest.NewRecorder()
	transactions.GetAllTransactions(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = authedRequest(http.MethodGet, "/transaction/", "", adminIdentity)
	rec = httptest.NewRecorder()
	transactions.GetAllTransactions(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int                  `json:"count"`
		Data  []models.Transaction `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetUserTransactions_SelfOrAdmin(t *testing.T) {
	engine := setupEngine(t)
	createPending(t, engine)

	// Another user may not read u-1's transactions.
	stranger := models.Identity{ID: "u-2", Role: models.RoleUser}
	req := authedRequest(http.MethodGet, "/transaction/u-1", "", stranger)
	req.SetPathValue("userId", "u-1")
	rec := httptest.NewRecorder()
	transactions.GetUserTransactions(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = authedRequest(http.MethodGet, "/transaction/u-1", "", userIdentity)
	req.SetPathValue("userId", "u-1")
	rec = httptest.NewRecorder()
	transactions.GetUserTransactions(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAllTransactions_SortParams(t *testing.T) {
	engine := setupEngine(t)
	_, err := engine.Create(context.Background(), userIdentity, decimal.RequireFromString("30"), "c")
	require.NoError(t, err)
	_, err = engine.Create(context.Background(), userIdentity, decimal.RequireFromString("10"), "a")
	require.NoError(t, err)
	_, err = engine.Create(context.Background(), userIdentity, decimal.RequireFromString("20"), "b")
	require.NoError(t, err)

	req := authedRequest(http.MethodGet, "/transaction/?sortBy=amount&sortOrder=asc", "", adminIdentity)
	rec := httptest.NewRecorder()
	transactions.GetAllTransactions(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Transaction `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 3)
	assert.True(t, resp.Data[0].Amount.LessThan(resp.Data[1].Amount))
	assert.True(t, resp.Data[1].Amount.LessThan(resp.Data[2].Amount))

	req = authedRequest(http.MethodGet, "/transaction/?sortBy=nope", "", adminIdentity)
	rec = httptest.NewRecorder()
	transactions.GetAllTransactions(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
