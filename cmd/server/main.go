package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"CoopLink/internal/api/handlers/credit"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/api/routes"
	"CoopLink/internal/auth/token"
	"CoopLink/internal/config"
	"CoopLink/internal/core/accounts"
	creditCore "CoopLink/internal/core/credit"
	"CoopLink/internal/core/deposits"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/loans"
	"CoopLink/internal/core/members"
	"CoopLink/internal/core/surveys"
	"CoopLink/internal/core/sysconfig"
	postgresRepo "CoopLink/internal/db/postgres"
	"CoopLink/internal/mail"
	"CoopLink/internal/photos"
	"CoopLink/internal/sms"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to portal database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	token.InitTokenConfig()
	if cfg.SessionSecret != "" {
		if err := credit.InitCookieStore(cfg.SessionSecret); err != nil {
			log.Fatal("Failed to init session store: ", err)
		}
	} else {
		log.Println("SESSION_SECRET unset; credit console login disabled")
	}

	photoStore, err := photos.NewStore(cfg.CandidatePhotoDir)
	if err != nil {
		log.Fatal("Failed to init photo store: ", err)
	}

	mailer := mail.NewMailer(mail.Config{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
	})
	smsClient := sms.NewClient(cfg.SemaphoreAPIKey, cfg.SemaphoreSender)

	// Initialize repositories and services
	configService := sysconfig.NewService(postgresRepo.NewSysConfigRepository(db))
	memberService, err := members.NewMemberService(postgresRepo.NewMemberRepository(db))
	if err != nil {
		log.Fatal("Failed to init member service: ", err)
	}
	accountService := accounts.NewAccountService(
		postgresRepo.NewWebUserRepository(db), memberService, mailer,
		cfg.PortalBaseURL, cfg.MasterPassword)
	loanService := loans.NewLoanService(postgresRepo.NewLoanRepository(db))
	depositService := deposits.NewDepositService(postgresRepo.NewDepositRepository(db))
	creditService := creditCore.NewCreditService(postgresRepo.NewCreditRepository(db), smsClient, cfg.OTPTTL)
	electionService := elections.NewElectionService(postgresRepo.NewElectionRepository(db))
	surveyService := surveys.NewSurveyService(postgresRepo.NewSurveyRepository(db))

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.PortalBaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rate limiting: 100 requests per minute per IP overall, with a
	// tighter limiter on credential endpoints
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, 1*time.Minute)

	authMiddleware := middleware.NewMemberAuthMiddleware(configService)

	routes.RegisterAuthRoutes(r, accountService, authMiddleware, loginLimiter)
	routes.RegisterMemberRoutes(r, memberService, creditService, authMiddleware)
	routes.RegisterLoanRoutes(r, loanService, authMiddleware)
	routes.RegisterDepositRoutes(r, depositService, authMiddleware)
	routes.RegisterCreditRoutes(r, creditService, loginLimiter)
	routes.RegisterElectionRoutes(r, electionService, configService, photoStore, authMiddleware)
	routes.RegisterSurveyRoutes(r, surveyService, authMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("CoopLink portal starting on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
