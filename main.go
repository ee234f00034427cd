package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AjinkyaSambare/razorpay-integration/config"
	"github.com/AjinkyaSambare/razorpay-integration/handlers"
	"github.com/AjinkyaSambare/razorpay-integration/internal/gateway"
	"github.com/AjinkyaSambare/razorpay-integration/internal/ghost"
	"github.com/AjinkyaSambare/razorpay-integration/middleware"
	"github.com/AjinkyaSambare/razorpay-integration/services"
)

var (
	cfg               *config.Config
	orderService      *services.OrderService
	membershipService *services.MembershipService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	ghostClient, err := ghost.NewClient(cfg.GhostAdminAPIURL, cfg.GhostAdminAPIKey)
	if err != nil {
		log.Fatal("Failed to initialize Ghost admin client: ", err)
	}

	razorpayGateway := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderService = services.NewOrderService(razorpayGateway, cfg)
	membershipService = services.NewMembershipService(ghostClient, cfg.RazorpayKeySecret)

	middleware.InitPrometheus()
	log.Println("Razorpay gateway and Ghost admin client initialized")
}

func main() {
	paymentHandler := handlers.NewPaymentHandler(orderService, membershipService, cfg.SuccessURL)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/razorpay").Subrouter()
	api.HandleFunc("/create-order", paymentHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/verify-payment", paymentHandler.VerifyPayment).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := ":" + cfg.Port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
