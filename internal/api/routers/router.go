package routers

import (
	"net/http"

	"creditdesk/internal/api/handlers/health"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	tRouter := transactionsRouter()
	mux.Handle("/transaction/", tRouter)

	aRouter := authRouter()
	mux.Handle("/auth/", aRouter)

	mux.HandleFunc("/health", health.Handler)

	return mux
}
