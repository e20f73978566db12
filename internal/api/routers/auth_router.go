package routers

import (
	"net/http"

	"creditdesk/internal/api/handlers/auth"
)

func authRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/credit/{userId}", auth.GetUserCredit)

	return mux
}
