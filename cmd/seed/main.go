package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"washpos-backend/internal/config"
	"washpos-backend/internal/db"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/seeder"
	"washpos-backend/internal/service"
)

func main() {
	var (
		customers = flag.Int("customers", 25, "number of customers to generate")
		days      = flag.Int("days", 30, "how many days of history to generate")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed for reproducible datasets")
		admin     = flag.String("admin", "admin", "admin username to create (empty to skip)")
		password  = flag.String("password", "admin123", "admin password")
	)
	flag.Parse()

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

	settingsRepo := repository.SettingsRepository{DB: pg}
	if err := settingsRepo.SeedDefaults(ctx, config.DefaultSettings()); err != nil {
		logger.Error("failed to seed default settings", "err", err)
		os.Exit(1)
	}
	if err := settingsRepo.SeedShiftDefaults(ctx); err != nil {
		logger.Error("failed to seed shift settings", "err", err)
		os.Exit(1)
	}

	if *admin != "" {
		authSvc := service.AuthService{Config: cfg, Users: repository.UserRepository{DB: pg}}
		_, err := authSvc.Register(ctx, service.RegisterInput{
			Username: *admin,
			Password: *password,
			Role:     "admin",
		})
		switch {
		case err == nil:
			logger.Info("admin user created", "username", *admin)
		case errors.Is(err, service.ErrUsernameTaken):
			logger.Info("admin user already exists", "username", *admin)
		default:
			logger.Error("failed to create admin user", "err", err)
			os.Exit(1)
		}
	}

	s := seeder.Seeder{
		DB:         pg,
		Customers:  repository.CustomerRepository{DB: pg},
		Wash:       repository.WashRepository{DB: pg},
		Kasir:      repository.KasirRepository{DB: pg},
		Reviews:    repository.ReviewRepository{DB: pg},
		Points:     repository.PointsRepository{DB: pg},
		Employees:  repository.EmployeeRepository{DB: pg},
		Attendance: repository.AttendanceRepository{DB: pg},
		Payroll:    repository.PayrollRepository{DB: pg},
		KasBon:     repository.KasBonRepository{DB: pg},
		Settings:   settingsRepo,
		Logger:     logger,
	}

	start := time.Now()
	if err := s.Run(ctx, seeder.Options{Customers: *customers, Days: *days, Seed: *seed}); err != nil {
		logger.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	logger.Info("seeding complete", "customers", *customers, "days", *days, "seed", *seed, "took", time.Since(start).String())
}
