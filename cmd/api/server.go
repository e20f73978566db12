package main

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"

	authhandlers "creditdesk/internal/api/handlers/auth"
	txhandlers "creditdesk/internal/api/handlers/transactions"
	mw "creditdesk/internal/api/middlewares"
	"creditdesk/internal/api/routers"
	"creditdesk/internal/notify"
	"creditdesk/internal/repositories/credits"
	"creditdesk/internal/repositories/sqlconnect"
	txstore "creditdesk/internal/repositories/transactions"
	"creditdesk/internal/workflow"
	"creditdesk/pkg/cron"
	"creditdesk/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		return
	}

	utils.InitLogger()

	err = sqlconnect.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	engine := workflow.NewEngine(txstore.NewStore(sqlconnect.DB), credits.NewLedger(sqlconnect.DB))
	engine.SetNotifier(notify.NewEmailNotifier(sqlconnect.DB))

	txhandlers.Configure(engine)
	authhandlers.Configure(engine)

	cronJobs := cron.StartCronJob(sqlconnect.DB)
	defer cronJobs.Stop()

	port := os.Getenv("SERVER_PORT")

	router := routers.MainRouter()
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/health")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	fmt.Println("Server is running on port", port)

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
