package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/util"
)

// Delays are the artificial latencies the mock adds per operation. Nothing
// orders concurrently in-flight calls beyond each resolving after its own
// delay, so mutation order follows completion order, not call order.
type Delays struct {
	ListPublic   time.Duration
	ListPersonal time.Duration
	Create       time.Duration
	Update       time.Duration
	Delete       time.Duration
	Request      time.Duration
	Verify       time.Duration
	CurrentUser  time.Duration
	Refresh      time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		ListPublic:   800 * time.Millisecond,
		ListPersonal: 300 * time.Millisecond,
		Create:       200 * time.Millisecond,
		Update:       200 * time.Millisecond,
		Delete:       150 * time.Millisecond,
		Request:      time.Second,
		Verify:       time.Second,
		CurrentUser:  500 * time.Millisecond,
		Refresh:      500 * time.Millisecond,
	}
}

// NoDelays keeps tests fast.
func NoDelays() Delays {
	return Delays{}
}

// mockCode is the verification code the mock accepts.
const mockCode = "123456"

const mockTokenTTL = 24 * time.Hour

type MockExpenseService struct {
	store  storage.Store
	userID int64
	delays Delays
}

func NewMockExpenseService(store storage.Store, userID int64, delays Delays) *MockExpenseService {
	return &MockExpenseService{
		store:  store,
		userID: userID,
		delays: delays,
	}
}

func (m *MockExpenseService) PublicExpenses(ctx context.Context) ([]storage.Expense, error) {
	if err := wait(ctx, m.delays.ListPublic); err != nil {
		return nil, err
	}
	return m.store.PublicExpenses(ctx)
}

func (m *MockExpenseService) PersonalExpenses(ctx context.Context) ([]storage.Expense, error) {
	if err := wait(ctx, m.delays.ListPersonal); err != nil {
		return nil, err
	}
	return m.store.GetExpensesByUser(ctx, m.userID)
}

func (m *MockExpenseService) Create(ctx context.Context, input storage.ExpenseInput) (storage.Expense, error) {
	// The mutation runs after the delay, so with concurrent calls the store
	// sees completion order.
	if err := wait(ctx, m.delays.Create); err != nil {
		return nil, err
	}
	return m.store.CreateExpense(ctx, m.userID, input)
}

func (m *MockExpenseService) Update(
	ctx context.Context,
	id int64,
	update storage.ExpenseUpdate,
) (storage.Expense, error) {
	if err := wait(ctx, m.delays.Update); err != nil {
		return nil, err
	}
	return m.store.UpdateExpense(ctx, id, update)
}

func (m *MockExpenseService) Delete(ctx context.Context, id int64) error {
	if err := wait(ctx, m.delays.Delete); err != nil {
		return err
	}
	_, err := m.store.DeleteExpense(ctx, id)
	return err
}

type MockAuthService struct {
	delays     Delays
	signingKey []byte
	user       storage.User
}

func NewMockAuthService(delays Delays) *MockAuthService {
	return &MockAuthService{
		delays: delays,
		// Per-process key; mock credentials do not outlive the process.
		signingKey: []byte(util.GenerateRandomID(32)),
		user:       storage.FixtureUser(),
	}
}

func (m *MockAuthService) RequestVerification(ctx context.Context, _ string) (string, error) {
	if err := wait(ctx, m.delays.Request); err != nil {
		return "", err
	}
	return "인증 코드가 이메일로 전송되었습니다.", nil
}

func (m *MockAuthService) VerifyCode(ctx context.Context, email, code string) (LoginResult, error) {
	if err := wait(ctx, m.delays.Verify); err != nil {
		return LoginResult{}, err
	}

	if code != mockCode {
		return LoginResult{}, &Error{Message: "잘못된 인증 코드입니다."}
	}

	user := storage.NewUser(m.user.ID(), email, m.user.Name(), m.user.CreatedAt())
	token, err := m.mintToken(email)
	if err != nil {
		return LoginResult{}, &Error{Message: "failed to issue credential", Err: err}
	}

	return LoginResult{
		Credential: Credential{Token: token, TokenType: "bearer"},
		User:       user,
	}, nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (storage.User, error) {
	if err := wait(ctx, m.delays.CurrentUser); err != nil {
		return nil, err
	}
	return m.user, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context) (Credential, error) {
	if err := wait(ctx, m.delays.Refresh); err != nil {
		return Credential{}, err
	}

	token, err := m.mintToken(m.user.Email())
	if err != nil {
		return Credential{}, &Error{Message: "failed to refresh credential", Err: err}
	}
	return Credential{Token: token, TokenType: "bearer"}, nil
}

func (m *MockAuthService) Logout(_ context.Context) (string, error) {
	// Logout is the one operation that resolves immediately.
	return "로그아웃되었습니다.", nil
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (m *MockAuthService) mintToken(email string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: email,
		Name:  m.user.Name(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(mockTokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

// TokenExpiry reads the expiry claim without verifying the signature. The
// client only uses it to decide when a refresh is due; the service is the
// authority on validity.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	var claims jwt.RegisteredClaims
	_, _, err := parser.ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
