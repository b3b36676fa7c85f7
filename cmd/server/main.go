package main

import (
	"log"
	"net/http"
	"os"

	"wastetrack-backend/internal/database"
	"wastetrack-backend/internal/handlers"
	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 WASTETRACK BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	if os.Getenv("APP_JWT_SECRET") == "" {
		log.Fatal("❌ FATAL ERROR: APP_JWT_SECRET environment variable is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "wastetrack.db"
		log.Printf("⚠️  DATABASE_PATH not set, using default: %s", dbPath)
	}

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbPath)
	if err != nil {
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedFacilities(db); err != nil {
		log.Fatal(err)
	}
	if err := database.SeedVehicles(db); err != nil {
		log.Fatal(err)
	}
	log.Println("✅ Seeding complete")

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/register", handlers.Register(db))
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public reference data
		r.Get("/facilities", handlers.GetFacilities(db))
		r.Get("/shop/items", handlers.GetShopItems())

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Profile
			r.Get("/profile", handlers.GetProfile(db))
			r.Get("/profile/qr", handlers.GetWasteIDCard(db))

			// Citizen collections
			r.Post("/collections", handlers.ScheduleCollection(db))
			r.Get("/collections/mine", handlers.GetMyCollections(db))
			r.Get("/collections/mine/summary", handlers.GetMyCollectionSummary(db))

			// Complaints
			r.Post("/complaints", handlers.CreateComplaint(db))
			r.Get("/complaints/mine", handlers.GetMyComplaints(db))

			// Rewards and shop
			r.Get("/rewards", handlers.GetRewardHistory(db))
			r.Post("/shop/redeem", handlers.RedeemItem(db))

			// Training
			r.Get("/training/modules", handlers.GetTrainingModules(db))
			r.Post("/training/modules/{id}/complete", handlers.CompleteTrainingModule(db))

			// Vehicles (live positions, any authenticated role)
			r.Get("/vehicles", handlers.GetVehicles(db))
		})

		// Worker endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("worker", "admin"))

			r.Get("/worker/collections/today", handlers.GetTodayCollections(db))
			r.Patch("/collections/{id}/status", handlers.UpdateCollectionStatus(db, wsHub))
			r.Patch("/vehicles/{id}/location", handlers.UpdateVehicleLocation(db, wsHub))

			r.Get("/admin/complaints", handlers.GetAllComplaints(db))
			r.Patch("/complaints/{id}/resolve", handlers.ResolveComplaint(db))
		})

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Get("/users", handlers.GetUsers(db))
			r.Post("/users", handlers.CreateUser(db))

			r.Post("/facilities", handlers.CreateFacility(db))
			r.Post("/vehicles", handlers.CreateVehicle(db))

			r.Get("/dashboard/stats", handlers.GetDashboardStats(db))
			r.Get("/reports/collections", handlers.GetCollectionReport(db))
			r.Get("/reports/collections/export", handlers.ExportCollectionsCSV(db))
			r.Get("/analytics/wards", handlers.GetWardPerformance(db))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
