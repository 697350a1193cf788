package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"washpos-backend/internal/config"
	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/stretchr/testify/require"
)

// testDB connects to the database named by DATABASE_URL and runs migrations.
// Tests using it are skipped when the variable is unset.
func testDB(t *testing.T) *db.Postgres {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pg, err := db.New(ctx, config.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, pg.Migrate(ctx, logger))
	return pg
}

func createTestCustomer(t *testing.T, pg *db.Postgres, plate string) domain.Customer {
	t.Helper()
	ctx := context.Background()
	repo := CustomerRepository{DB: pg}
	c, err := repo.Create(ctx, domain.Customer{
		Plate:       plate,
		Name:        "Integrasi Uji",
		Phone:       "081200000000",
		VehicleType: "Mobil",
		Brand:       "Toyota",
		Size:        "M",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pg.Pool.Exec(ctx, `DELETE FROM wash_transactions WHERE plate=$1`, c.Plate)
		_, _ = pg.Pool.Exec(ctx, `DELETE FROM customers WHERE plate=$1`, c.Plate)
	})
	return *c
}

// A customer written with a lower-case plate reads back upper-cased, on both
// the stored row and the lookup key.
func TestCustomerRepository_RoundTripUppercasesPlate(t *testing.T) {
	pg := testDB(t)
	ctx := context.Background()
	repo := CustomerRepository{DB: pg}

	c := createTestCustomer(t, pg, "zz 9001 it")
	require.Equal(t, "ZZ 9001 IT", c.Plate)

	got, err := repo.GetByPlate(ctx, "  zz 9001 it ")
	require.NoError(t, err)
	require.Equal(t, c.Plate, got.Plate)
	require.Equal(t, c.Name, got.Name)
	require.Equal(t, c.Size, got.Size)

	_, err = repo.Create(ctx, domain.Customer{
		Plate: "ZZ 9001 IT", Name: "Duplikat", Phone: "0812", VehicleType: "Mobil", Brand: "Honda", Size: "S",
	})
	require.ErrorIs(t, err, ErrPlateExists)
}

// Checking out twice must fail with the wrong-state error and leave the row
// exactly as the first check-out wrote it; an unknown id reports not found.
func TestWashRepository_CheckOutGuard(t *testing.T) {
	pg := testDB(t)
	ctx := context.Background()
	repo := WashRepository{DB: pg}

	c := createTestCustomer(t, pg, "ZZ 9002 IT")
	wash, err := repo.CheckIn(ctx, CheckInWashInput{
		Plate:            c.Plate,
		Package:          "Cuci Reguler",
		Price:            35_000,
		CheckIn:          time.Now().In(domain.WIB).Add(-2 * time.Hour),
		ArrivalChecklist: []string{"STNK di kendaraan"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.WashInProgress, wash.Status)

	firstOut := time.Now().In(domain.WIB).Add(-time.Hour)
	done, err := repo.CheckOut(ctx, wash.ID, firstOut, []string{"Eksterior kering"})
	require.NoError(t, err)
	require.Equal(t, domain.WashDone, done.Status)
	require.NotNil(t, done.CheckOut)

	_, err = repo.CheckOut(ctx, wash.ID, time.Now(), []string{"Kaca bersih"})
	require.ErrorIs(t, err, ErrWashNotInProgress)

	// row untouched by the rejected transition
	after, err := repo.GetByID(ctx, wash.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WashDone, after.Status)
	require.NotNil(t, after.CheckOut)
	require.WithinDuration(t, *done.CheckOut, *after.CheckOut, time.Second)
	require.Equal(t, done.CompletionChecklist, after.CompletionChecklist)

	_, err = repo.CheckOut(ctx, -1, time.Now(), nil)
	require.ErrorIs(t, err, ErrNotFound)
}

// Two accruals for the same (plate, phone) land in one accumulator row whose
// balance is the sum; a different phone gets its own row.
func TestPointsRepository_SingleAccumulatorRow(t *testing.T) {
	pg := testDB(t)
	ctx := context.Background()
	repo := PointsRepository{DB: pg}

	// run inside a rolled-back tx so nothing persists
	tx, err := pg.Pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	first, err := repo.AddTx(ctx, tx, "zz 9003 it", "0813", 30)
	require.NoError(t, err)
	require.Equal(t, "ZZ 9003 IT", first.Plate)
	require.Equal(t, int64(30), first.Points)

	second, err := repo.AddTx(ctx, tx, "ZZ 9003 IT", "0813", 50)
	require.NoError(t, err)
	require.Equal(t, int64(80), second.Points)

	other, err := repo.AddTx(ctx, tx, "ZZ 9003 IT", "0814", 10)
	require.NoError(t, err)
	require.Equal(t, int64(10), other.Points)

	var rows int
	require.NoError(t, tx.QueryRow(ctx, `SELECT count(*) FROM customer_points WHERE plate=$1 AND phone=$2`, "ZZ 9003 IT", "0813").Scan(&rows))
	require.Equal(t, 1, rows)
}
