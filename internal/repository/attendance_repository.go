package repository

import (
	"context"
	"time"

	"washpos-backend/internal/db"
	"washpos-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

// CheckIn opens today's attendance row for the employee, or refreshes the
// check-in time if one already exists.
func (r AttendanceRepository) CheckIn(ctx context.Context, employeeID int64, at time.Time) error {
	date := at.In(domain.WIB).Format("2006-01-02")
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, status, check_in, created_at)
		VALUES ($1,$2,$3,$4, now())
		ON CONFLICT (employee_id, attendance_date)
		DO UPDATE SET check_in = EXCLUDED.check_in, status = EXCLUDED.status
	`, employeeID, date, domain.AttendanceHadir, at)
	return err
}

func (r AttendanceRepository) CheckOut(ctx context.Context, employeeID int64, at time.Time) error {
	date := at.In(domain.WIB).Format("2006-01-02")
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, status, check_out, created_at)
		VALUES ($1,$2,$3,$4, now())
		ON CONFLICT (employee_id, attendance_date)
		DO UPDATE SET check_out = EXCLUDED.check_out
	`, employeeID, date, domain.AttendanceHadir, at)
	return err
}

// MarkStatus records an Izin or Alpha day. Check times stay null.
func (r AttendanceRepository) MarkStatus(ctx context.Context, employeeID int64, date time.Time, status domain.AttendanceStatus) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, status, created_at)
		VALUES ($1,$2,$3, now())
		ON CONFLICT (employee_id, attendance_date)
		DO UPDATE SET status = EXCLUDED.status, check_in = NULL, check_out = NULL
	`, employeeID, date.In(domain.WIB).Format("2006-01-02"), status)
	return err
}

// InsertTx writes a full attendance row inside a transaction (fixture path).
func (r AttendanceRepository) InsertTx(ctx context.Context, tx pgx.Tx, a domain.Attendance) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, status, check_in, check_out, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`, a.EmployeeID, a.Date.In(domain.WIB).Format("2006-01-02"), a.Status, a.CheckIn, a.CheckOut)
	return err
}

func (r AttendanceRepository) ListMonth(ctx context.Context, employeeID int64, month time.Time) ([]domain.Attendance, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, domain.WIB)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, employee_id, attendance_date, status, check_in, check_out, created_at
		FROM attendance
		WHERE employee_id=$1
		  AND attendance_date >= $2
		  AND attendance_date < $2 + interval '1 month'
		ORDER BY attendance_date ASC
	`, employeeID, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// CountPresent counts Hadir days in [start, end] for payroll.
func (r AttendanceRepository) CountPresent(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT count(*)
		FROM attendance
		WHERE employee_id=$1 AND status=$2
		  AND attendance_date >= $3 AND attendance_date <= $4
	`, employeeID, domain.AttendanceHadir,
		start.In(domain.WIB).Format("2006-01-02"), end.In(domain.WIB).Format("2006-01-02")).Scan(&n)
	return n, err
}

func collectAttendance(rows pgx.Rows) ([]domain.Attendance, error) {
	var items []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		var status string
		var checkIn, checkOut pgtype.Timestamptz
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &status, &checkIn, &checkOut, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Status = domain.AttendanceStatus(status)
		if checkIn.Valid {
			t := checkIn.Time
			a.CheckIn = &t
		}
		if checkOut.Valid {
			t := checkOut.Time
			a.CheckOut = &t
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
