package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"soulcare/internal/service"
	"soulcare/internal/transport/rest/handler"
	"soulcare/internal/transport/rest/middleware"
	"soulcare/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	UserService       *service.UserService
	AssessmentService *service.AssessmentService
	ChatService       *service.ChatService
	WSHandler         *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService, c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	chatHandler := handler.NewChatHandler(c.ChatService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/otp/request", authHandler.RequestOtp).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/otp/verify", authHandler.VerifyOtp).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/back", authHandler.Back).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", assessmentHandler.Questions).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/chat", c.WSHandler.ChatWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/users/me", userHandler.Me).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/users/me/complete-profile", userHandler.CompleteProfile).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/users/me/profile", userHandler.UpdateProfile).Methods("PUT", "OPTIONS")

	userRoutes.HandleFunc("/assessments/session", assessmentHandler.StartSession).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/session", assessmentHandler.GetSession).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/assessments/session/answer", assessmentHandler.Answer).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/assessments/session/next", assessmentHandler.Next).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/session/previous", assessmentHandler.Previous).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments/session/reset", assessmentHandler.Reset).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments", assessmentHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/assessments/quota", assessmentHandler.Quota).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/chat/messages", chatHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chat/messages", chatHandler.Send).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
