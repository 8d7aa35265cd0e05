package storage

import (
	"context"
	"time"

	"github.com/wanderlog/expenseclient/internal/logger"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "record not found"
}

// DateLayout is the storage form of an expense date. The string sorts
// lexically in the same order as the instants it denotes.
const DateLayout = "2006-01-02 15:04"

// Categories and payment methods form closed sets. The labels are the ones
// the remote service stores and returns.
var Categories = []string{
	"숙박",
	"교통",
	"식비",
	"입장료",
	"쇼핑",
	"기타",
}

var PaymentMethods = []string{
	"신용카드",
	"현금",
	"온라인결제",
	"체크카드",
	"모바일결제",
}

func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(name string) bool {
	for _, m := range PaymentMethods {
		if m == name {
			return true
		}
	}
	return false
}

type Expense interface {
	ID() int64
	Date() string
	Category() string
	Amount() float64
	PaymentMethod() string
	Note() string
	UserID() int64
	Deleted() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

type expense struct {
	id            int64
	date          string
	category      string
	amount        float64
	paymentMethod string
	note          string
	userID        int64
	deleted       bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewExpense(
	id int64,
	date, category, paymentMethod, note string,
	amount float64,
	userID int64,
	deleted bool,
	createdAt, updatedAt time.Time,
) Expense {
	return &expense{
		id:            id,
		date:          date,
		category:      category,
		amount:        amount,
		paymentMethod: paymentMethod,
		note:          note,
		userID:        userID,
		deleted:       deleted,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *expense) ID() int64 {
	return e.id
}

func (e *expense) Date() string {
	return e.date
}

func (e *expense) Category() string {
	return e.category
}

func (e *expense) Amount() float64 {
	return e.amount
}

func (e *expense) PaymentMethod() string {
	return e.paymentMethod
}

func (e *expense) Note() string {
	return e.note
}

func (e *expense) UserID() int64 {
	return e.userID
}

func (e *expense) Deleted() bool {
	return e.deleted
}

func (e *expense) CreatedAt() time.Time {
	return e.createdAt
}

func (e *expense) UpdatedAt() time.Time {
	return e.updatedAt
}

type User interface {
	ID() int64
	Email() string
	Name() string
	CreatedAt() time.Time
}

type user struct {
	id        int64
	email     string
	name      string
	createdAt time.Time
}

func NewUser(id int64, email, name string, createdAt time.Time) User {
	return user{
		id:        id,
		email:     email,
		name:      name,
		createdAt: createdAt,
	}
}

func (u user) ID() int64 {
	return u.id
}

func (u user) Email() string {
	return u.email
}

func (u user) Name() string {
	return u.name
}

func (u user) CreatedAt() time.Time {
	return u.createdAt
}

// ExpenseInput carries the caller-supplied fields of a new expense.
// Validation happens before the store is reached.
type ExpenseInput struct {
	Date          string
	Category      string
	Amount        float64
	PaymentMethod string
	Note          string
}

// ExpenseUpdate is a partial update. Nil fields keep the stored value.
// Identifier, owner and creation time are never touched by an update.
type ExpenseUpdate struct {
	Date          *string
	Category      *string
	Amount        *float64
	PaymentMethod *string
	Note          *string
}

// Store emulates the remote expense datastore. Soft-deleted records are
// excluded from every read path except CountExpenses, which exists so tests
// can observe that a delete never removes the row.
type Store interface {
	// Setup
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error
	SeedFixtures(ctx context.Context) error

	// Expenses
	CreateExpense(ctx context.Context, userID int64, input ExpenseInput) (Expense, error)
	GetExpenseByID(ctx context.Context, id int64) (Expense, error)
	UpdateExpense(ctx context.Context, id int64, update ExpenseUpdate) (Expense, error)
	DeleteExpense(ctx context.Context, id int64) (Expense, error)
	GetExpensesByUser(ctx context.Context, userID int64) ([]Expense, error)
	PublicExpenses(ctx context.Context) ([]Expense, error)
	CountExpenses(ctx context.Context) (int64, error)

	Close() error
}
