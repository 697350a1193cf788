package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"washpos-backend/internal/config"
	"washpos-backend/internal/db"
	"washpos-backend/internal/handler"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/server"
	"washpos-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx, logger); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	customerRepo := repository.CustomerRepository{DB: pg}
	washRepo := repository.WashRepository{DB: pg}
	kasirRepo := repository.KasirRepository{DB: pg}
	reviewRepo := repository.ReviewRepository{DB: pg}
	pointsRepo := repository.PointsRepository{DB: pg}
	settingsRepo := repository.SettingsRepository{DB: pg}
	employeeRepo := repository.EmployeeRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	payrollRepo := repository.PayrollRepository{DB: pg}
	kasBonRepo := repository.KasBonRepository{DB: pg}
	auditRepo := repository.AuditRepository{DB: pg}

	if err := settingsRepo.SeedDefaults(ctx, config.DefaultSettings()); err != nil {
		logger.Error("failed to seed default settings", "err", err)
		os.Exit(1)
	}
	if err := settingsRepo.SeedShiftDefaults(ctx); err != nil {
		logger.Error("failed to seed shift settings", "err", err)
		os.Exit(1)
	}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo}
	washSvc := service.WashService{Wash: washRepo, Customer: customerRepo, Settings: settingsRepo, Audit: auditRepo}
	checkoutSvc := service.CheckoutService{Kasir: kasirRepo, Wash: washRepo, Audit: auditRepo}
	reviewSvc := service.ReviewService{Reviews: reviewRepo, Kasir: kasirRepo, Points: pointsRepo, Customer: customerRepo, Audit: auditRepo}
	payrollSvc := service.PayrollService{Payroll: payrollRepo, Attendance: attendanceRepo, Employee: employeeRepo, Settings: settingsRepo, Audit: auditRepo}
	kasBonSvc := service.KasBonService{KasBon: kasBonRepo, Payroll: payrollRepo, Employee: employeeRepo, Audit: auditRepo}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	customerHandler := handler.CustomerHandler{Repo: customerRepo}
	washHandler := handler.WashHandler{Service: washSvc, Repo: washRepo, Currency: cfg.DefaultCurrency}
	checkoutHandler := handler.CheckoutHandler{Service: checkoutSvc, Repo: kasirRepo, Currency: cfg.DefaultCurrency}
	reviewHandler := handler.ReviewHandler{Service: reviewSvc, Repo: reviewRepo, Points: pointsRepo}
	employeeHandler := handler.EmployeeHandler{Repo: employeeRepo}
	attendanceHandler := handler.AttendanceHandler{Repo: attendanceRepo, Employees: employeeRepo}
	payrollHandler := handler.PayrollHandler{Service: payrollSvc, Repo: payrollRepo, Currency: cfg.DefaultCurrency}
	kasBonHandler := handler.KasBonHandler{Service: kasBonSvc, Repo: kasBonRepo, Currency: cfg.DefaultCurrency}
	settingsHandler := handler.SettingsHandler{Repo: settingsRepo}
	auditHandler := handler.AuditHandler{Repo: auditRepo}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler, customerHandler, washHandler, checkoutHandler,
		reviewHandler, employeeHandler, attendanceHandler, payrollHandler,
		kasBonHandler, settingsHandler, auditHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
