package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"washpos-backend/internal/config"
	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"
	"washpos-backend/internal/repository"
	"washpos-backend/internal/service"

	"github.com/jackc/pgx/v5"
)

// Seeder populates a coherent fixture dataset across every table, in
// dependency order: customers feed washes, washes feed checkouts, checkouts
// feed reviews and points; employees feed attendance, attendance feeds
// payroll, payroll feeds cash-advance deductions.
type Seeder struct {
	DB         *db.Postgres
	Customers  repository.CustomerRepository
	Wash       repository.WashRepository
	Kasir      repository.KasirRepository
	Reviews    repository.ReviewRepository
	Points     repository.PointsRepository
	Employees  repository.EmployeeRepository
	Attendance repository.AttendanceRepository
	Payroll    repository.PayrollRepository
	KasBon     repository.KasBonRepository
	Settings   repository.SettingsRepository
	Logger     *slog.Logger
}

type Options struct {
	Customers int
	Days      int
	Seed      int64
}

// Run generates the whole dataset inside one transaction; any failure rolls
// the batch back atomically.
func (s Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Customers <= 0 {
		opts.Customers = 25
	}
	if opts.Days <= 0 {
		opts.Days = 30
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	now := time.Now().In(domain.WIB)
	windowStart := domain.Today().AddDate(0, 0, -opts.Days)

	packages, multipliers, shiftPcts, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}

	tx, err := s.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	customers, err := s.seedCustomers(ctx, tx, rng, opts.Customers)
	if err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	checkouts, err := s.seedWashesAndCheckouts(ctx, tx, rng, customers, packages, multipliers, windowStart, now)
	if err != nil {
		return fmt.Errorf("seed washes: %w", err)
	}

	if err := s.seedReviews(ctx, tx, rng, checkouts); err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	employees, err := s.seedEmployees(ctx, tx, windowStart)
	if err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}

	if err := s.seedAttendance(ctx, tx, rng, employees, windowStart, now); err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}

	payrolls, err := s.seedPayroll(ctx, tx, employees, shiftPcts, windowStart, now)
	if err != nil {
		return fmt.Errorf("seed payroll: %w", err)
	}

	if err := s.seedKasBon(ctx, tx, rng, employees, payrolls, windowStart, now); err != nil {
		return fmt.Errorf("seed kas bon: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.Logger.Info("fixture data generated",
		"customers", len(customers),
		"checkouts", len(checkouts),
		"employees", len(employees),
		"payrolls", len(payrolls))
	return nil
}

func (s Seeder) loadConfig(ctx context.Context) ([]config.WashPackage, map[string]float64, map[string]float64, error) {
	var packages []config.WashPackage
	if err := s.Settings.Load(ctx, config.KeyWashPackages, &packages); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, err
	}
	multipliers := map[string]float64{}
	if err := s.Settings.Load(ctx, config.KeySizeMultipliers, &multipliers); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, err
	}
	shiftPcts := map[string]float64{}
	shifts, err := s.Settings.ListShifts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, sh := range shifts {
		shiftPcts[sh.Shift] = sh.Percentage
	}
	return packages, multipliers, shiftPcts, nil
}

func (s Seeder) seedCustomers(ctx context.Context, tx pgx.Tx, rng *rand.Rand, n int) ([]domain.Customer, error) {
	sizes := []string{"S", "M", "M", "L", "XL"}
	var out []domain.Customer
	for _, plate := range uniquePlates(rng, n) {
		vehicle := vehicleTypes[rng.Intn(len(vehicleTypes))]
		c, err := s.Customers.CreateTx(ctx, tx, domain.Customer{
			Plate:       plate,
			Name:        customerNames[rng.Intn(len(customerNames))],
			Phone:       fmt.Sprintf("08%d", 1000000000+rng.Intn(900000000)),
			VehicleType: vehicle,
			Brand:       brandsFor(vehicle)[rng.Intn(len(brandsFor(vehicle)))],
			Size:        sizes[rng.Intn(len(sizes))],
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// checkoutRef carries what later steps need from a generated checkout.
type checkoutRef struct {
	Customer domain.Customer
	Kasir    domain.KasirTransaction
}

func (s Seeder) seedWashesAndCheckouts(
	ctx context.Context, tx pgx.Tx, rng *rand.Rand,
	customers []domain.Customer, packages []config.WashPackage, multipliers map[string]float64,
	windowStart, now time.Time,
) ([]checkoutRef, error) {
	if len(packages) == 0 {
		return nil, errors.New("no wash packages configured")
	}
	methods := []domain.PaymentMethod{domain.PayTunai, domain.PayTunai, domain.PayQRIS, domain.PayTransfer}
	days := int(now.Sub(windowStart).Hours() / 24)
	if days < 1 {
		days = 1
	}

	var out []checkoutRef
	for _, c := range customers {
		visits := 1 + rng.Intn(3)
		for v := 0; v < visits; v++ {
			day := windowStart.AddDate(0, 0, rng.Intn(days))
			checkIn := day.Add(time.Duration(8+rng.Intn(9)) * time.Hour).Add(time.Duration(rng.Intn(60)) * time.Minute)
			if checkIn.After(now) {
				continue
			}
			pkg := packages[rng.Intn(len(packages))]
			mult, ok := multipliers[c.Size]
			if !ok {
				mult = 1.0
			}
			price := service.WashPrice(pkg.Price, mult)

			wash, err := s.Wash.CheckInTx(ctx, tx, repository.CheckInWashInput{
				Plate:            c.Plate,
				Package:          pkg.Name,
				Price:            price,
				CheckIn:          checkIn,
				ArrivalChecklist: arrivalChecklist,
			})
			if err != nil {
				return nil, err
			}

			checkOut := checkIn.Add(time.Duration(45+rng.Intn(75)) * time.Minute)
			if checkOut.After(now) {
				// Still on the rack; no checkout yet.
				continue
			}
			if err := s.Wash.CheckOutTx(ctx, tx, wash.ID, checkOut, completionChecklist); err != nil {
				return nil, err
			}

			items := randomCafeItems(rng)
			kasir, err := s.Kasir.CreateTx(ctx, tx, repository.CreateKasirInput{
				SecretCode:        service.NewSecretCode(),
				Plate:             c.Plate,
				WashTransactionID: &wash.ID,
				WashTotal:         price,
				PaymentMethod:     methods[rng.Intn(len(methods))],
				TransactedAt:      checkOut,
				Items:             items,
			})
			if err != nil {
				return nil, err
			}
			out = append(out, checkoutRef{Customer: c, Kasir: *kasir})
		}
	}
	return out, nil
}

func (s Seeder) seedReviews(ctx context.Context, tx pgx.Tx, rng *rand.Rand, checkouts []checkoutRef) error {
	for _, ref := range checkouts {
		if rng.Float64() >= 0.6 {
			continue
		}
		rating := weightedRating(rng)
		review, err := s.Reviews.CreateTx(ctx, tx, repository.CreateReviewInput{
			KasirTransactionID: ref.Kasir.ID,
			Rating:             rating,
			Text:               reviewTexts[rating][rng.Intn(len(reviewTexts[rating]))],
			RewardPoints:       rating * service.PointsPerRating,
		})
		if err != nil {
			return err
		}
		if _, err := s.Points.AddTx(ctx, tx, ref.Customer.Plate, ref.Customer.Phone, int64(review.RewardPoints)); err != nil {
			return err
		}
	}
	return nil
}

// weightedRating draws from {3, 4, 5} at 20/30/50.
func weightedRating(rng *rand.Rand) int {
	switch p := rng.Float64(); {
	case p < 0.2:
		return 3
	case p < 0.5:
		return 4
	default:
		return 5
	}
}

func (s Seeder) seedEmployees(ctx context.Context, tx pgx.Tx, windowStart time.Time) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, tpl := range employeeTemplates {
		e, err := s.Employees.CreateTx(ctx, tx, repository.CreateEmployeeInput{
			Name:      tpl.Name,
			Role:      tpl.Role,
			DailyWage: tpl.DailyWage,
			Shift:     tpl.Shift,
			Phone:     tpl.Phone,
			JoinDate:  windowStart.AddDate(0, -6, 0),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

func (s Seeder) seedAttendance(ctx context.Context, tx pgx.Tx, rng *rand.Rand, employees []domain.Employee, windowStart, now time.Time) error {
	for day := windowStart; day.Before(now); day = day.AddDate(0, 0, 1) {
		for _, e := range employees {
			status := domain.AttendanceHadir
			switch p := rng.Float64(); {
			case p < 0.05:
				status = domain.AttendanceAlpha
			case p < 0.15:
				status = domain.AttendanceIzin
			}
			a := domain.Attendance{EmployeeID: e.ID, Date: day, Status: status}
			if status == domain.AttendanceHadir {
				in := day.Add(7*time.Hour + 50*time.Minute).Add(time.Duration(rng.Intn(30)) * time.Minute)
				outAt := day.Add(17 * time.Hour).Add(time.Duration(rng.Intn(45)) * time.Minute)
				a.CheckIn = &in
				a.CheckOut = &outAt
			}
			if err := s.Attendance.InsertTx(ctx, tx, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedPayroll closes one paid period over the first half of the window and
// leaves the second half pending.
func (s Seeder) seedPayroll(ctx context.Context, tx pgx.Tx, employees []domain.Employee, shiftPcts map[string]float64, windowStart, now time.Time) ([]domain.PayrollRecord, error) {
	mid := windowStart.AddDate(0, 0, int(now.Sub(windowStart).Hours()/24/2))
	var out []domain.PayrollRecord
	for _, e := range employees {
		pct, ok := shiftPcts[e.Shift]
		if !ok {
			pct = 1.0
		}
		for _, period := range []struct {
			Start, End time.Time
			Paid       bool
		}{
			{windowStart, mid, true},
			{mid.AddDate(0, 0, 1), domain.Today(), false},
		} {
			days, err := s.countPresentTx(ctx, tx, e.ID, period.Start, period.End)
			if err != nil {
				return nil, err
			}
			base := service.BasePay(e.DailyWage.Amount, days, pct)
			rec, err := s.Payroll.CreateTx(ctx, tx, repository.CreatePayrollInput{
				EmployeeID:  e.ID,
				PeriodStart: period.Start,
				PeriodEnd:   period.End,
				DaysWorked:  days,
				BasePay:     base,
				NetPay:      base,
			})
			if err != nil {
				return nil, err
			}
			if period.Paid {
				rec, err = s.Payroll.PayTx(ctx, tx, rec.ID, period.End.Add(18*time.Hour))
				if err != nil {
					return nil, err
				}
			}
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s Seeder) countPresentTx(ctx context.Context, tx pgx.Tx, employeeID int64, start, end time.Time) (int, error) {
	var n int
	err := tx.QueryRow(ctx, `
		SELECT count(*)
		FROM attendance
		WHERE employee_id=$1 AND status=$2
		  AND attendance_date >= $3 AND attendance_date <= $4
	`, employeeID, domain.AttendanceHadir,
		start.In(domain.WIB).Format("2006-01-02"), end.In(domain.WIB).Format("2006-01-02")).Scan(&n)
	return n, err
}

// seedKasBon gives roughly half the staff a cash advance and replays the
// planned installments against it, linking payroll-deducted repayments to the
// matching pay cycle.
func (s Seeder) seedKasBon(ctx context.Context, tx pgx.Tx, rng *rand.Rand, employees []domain.Employee, payrolls []domain.PayrollRecord, windowStart, now time.Time) error {
	principals := []int64{300_000, 400_000, 500_000, 750_000, 1_000_000}
	for _, e := range employees {
		if rng.Float64() >= 0.5 {
			continue
		}
		principal := principals[rng.Intn(len(principals))]
		loanDate := windowStart.AddDate(0, 0, rng.Intn(5))

		kb, err := s.KasBon.CreateTx(ctx, tx, repository.CreateKasBonInput{
			EmployeeID: e.ID,
			LoanDate:   loanDate,
			Principal:  principal,
		})
		if err != nil {
			return err
		}

		plan := service.PlanInstallments(rng, principal, loanDate, now, service.DefaultInstallmentFloor)
		for _, step := range plan {
			var payrollID *int64
			if step.Method == domain.PayPotongGaji {
				payrollID = service.MatchPayroll(payrolls, e.ID, step.Date)
			}
			if _, _, err := s.KasBon.ApplyInstallmentTx(ctx, tx, repository.ApplyInstallmentInput{
				KasBonID:  kb.ID,
				PayrollID: payrollID,
				PaidDate:  step.Date,
				Amount:    step.Amount,
				Method:    step.Method,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
