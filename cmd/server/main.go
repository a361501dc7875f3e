package main

import (
	"net/http"

	"finhub/internal/config"
	"finhub/internal/handlers"
	"finhub/internal/logger"
	"finhub/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.Get()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to open database", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()

	if err := db.CleanExpiredSessions(); err != nil {
		log.Warnw("failed to clean expired sessions", "error", err)
	}

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.ChartPath, cfg.SecureCookie)
	mux := setupRouter(h, cfg.StaticDir)

	log.Infow("listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

// setupRouter builds the route table. Routes below the auth middleware
// require an established session.
func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", h.LoginForm)
	mux.HandleFunc("POST /{$}", h.Login)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)

	guarded := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, h.AuthMiddleware(fn))
	}

	guarded("GET /logout", h.Logout)

	guarded("GET /{username}", h.Dashboard)
	guarded("POST /{username}", h.DashboardSubmit)
	guarded("GET /edit/{username}", h.EditProfileForm)
	guarded("POST /edit/{username}", h.EditProfile)
	guarded("GET /delete/{username}", h.DeleteProfileForm)
	guarded("POST /delete/{username}", h.DeleteProfile)

	// Standalone entry forms, kept alongside the dashboard-embedded ones.
	guarded("GET /add_income/{username}", h.AddIncomeForm)
	guarded("POST /add_income/{username}", h.AddIncome)
	guarded("GET /add_outcome/{username}", h.AddOutcomeForm)
	guarded("POST /add_outcome/{username}", h.AddOutcome)

	guarded("GET /edit_income/{id}/{kind}", h.EditTransactionForm)
	guarded("POST /edit_income/{id}/{kind}", h.EditTransaction)
	guarded("GET /delete_income/{id}", h.DeleteIncome)
	guarded("POST /delete_income/{id}", h.DeleteIncome)
	guarded("GET /delete_outcome/{id}/{kind}", h.DeleteTransaction)
	guarded("POST /delete_outcome/{id}/{kind}", h.DeleteTransaction)

	return mux
}
