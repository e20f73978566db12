package routers

import (
	"net/http"

	"creditdesk/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/transaction/{$}", transactions.GetAllTransactions)

	mux.HandleFunc("/transaction/create", transactions.CreateTransaction)

	mux.HandleFunc("/transaction/approve/{id}", transactions.ApproveTransaction)

	mux.HandleFunc("/transaction/reject/{id}", transactions.RejectTransaction)

	mux.HandleFunc("/transaction/{userId}", transactions.GetUserTransactions)

	return mux
}
