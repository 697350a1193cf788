package domain

import "time"

// Enumerations
const (
	RoleAdmin UserRole = "admin"
	RoleKasir UserRole = "kasir"

	WashInProgress WashStatus = "Dalam Proses"
	WashDone       WashStatus = "Selesai"

	AttendanceHadir AttendanceStatus = "Hadir"
	AttendanceIzin  AttendanceStatus = "Izin"
	AttendanceAlpha AttendanceStatus = "Alpha"

	PayrollPending PayrollStatus = "pending"
	PayrollPaid    PayrollStatus = "paid"

	KasBonOutstanding KasBonStatus = "Belum Lunas"
	KasBonPaid        KasBonStatus = "Lunas"

	PayTunai      PaymentMethod = "Tunai"
	PayQRIS       PaymentMethod = "QRIS"
	PayTransfer   PaymentMethod = "Transfer"
	PayPotongGaji PaymentMethod = "Potong Gaji"
)

type UserRole string
type WashStatus string
type AttendanceStatus string
type PayrollStatus string
type KasBonStatus string
type PaymentMethod string

type Money struct {
	Amount   int64
	Currency string
}

type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Customer is keyed by its upper-cased license plate.
type Customer struct {
	ID          int64
	Plate       string
	Name        string
	Phone       string
	VehicleType string
	Brand       string
	Size        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WashTransaction struct {
	ID                  int64
	Plate               string
	Package             string
	Price               Money
	Status              WashStatus
	CheckIn             time.Time
	CheckOut            *time.Time
	ArrivalChecklist    []string
	CompletionChecklist []string
	CreatedAt           time.Time
}

// KasirTransaction joins an optional wash job with café line items into one
// payment. SecretCode is a single-use token redeemed by at most one review.
type KasirTransaction struct {
	ID                int64
	SecretCode        string
	Plate             string
	WashTransactionID *int64
	WashTotal         Money
	CafeTotal         Money
	Total             Money
	PaymentMethod     PaymentMethod
	TransactedAt      time.Time
	Items             []CoffeeSale
	CreatedAt         time.Time
}

type CoffeeSale struct {
	ID                 int64
	KasirTransactionID int64
	Name               string
	UnitPrice          Money
	Qty                int
	Subtotal           Money
	CreatedAt          time.Time
}

type Review struct {
	ID                 int64
	KasirTransactionID int64
	Rating             int
	Text               string
	RewardPoints       int
	CreatedAt          time.Time
}

// CustomerPoints is a monotonic accumulator; points only ever increase.
type CustomerPoints struct {
	Plate     string
	Phone     string
	Points    int64
	UpdatedAt time.Time
}

type Employee struct {
	ID        int64
	Name      string
	Role      string
	DailyWage Money
	Shift     string
	Phone     string
	Active    bool
	JoinDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Attendance struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	Status     AttendanceStatus
	CheckIn    *time.Time
	CheckOut   *time.Time
	CreatedAt  time.Time
}

type PayrollRecord struct {
	ID          int64
	EmployeeID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	DaysWorked  int
	BasePay     Money
	Bonus       Money
	Deduction   Money
	NetPay      Money
	Status      PayrollStatus
	PaidAt      *time.Time
	CreatedAt   time.Time
}

// KasBon is an employee cash advance. Remaining never goes below zero and
// Status is Lunas exactly when Remaining is zero.
type KasBon struct {
	ID         int64
	EmployeeID int64
	LoanDate   time.Time
	Principal  Money
	Remaining  Money
	Status     KasBonStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type InstallmentPayment struct {
	ID        int64
	KasBonID  int64
	PayrollID *int64
	PaidDate  time.Time
	Amount    Money
	Method    PaymentMethod
	CreatedAt time.Time
}

type AuditEntry struct {
	ID       int64
	Action   string
	Entity   string
	Detail   string
	Actor    string
	LoggedAt time.Time
}

type ShiftSetting struct {
	Shift      string
	Percentage float64
	UpdatedAt  time.Time
}
