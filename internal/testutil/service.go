package testutil

import (
	"testing"

	"github.com/wanderlog/expenseclient/internal/service"
	"github.com/wanderlog/expenseclient/internal/storage"
)

// SetupMockServices returns mock bindings without artificial latency so
// tests run fast.
func SetupMockServices(t *testing.T) (service.ExpenseService, service.AuthService) {
	t.Helper()

	store := SetupTestStore(t)

	expenses := service.NewMockExpenseService(store, storage.FixtureUserID, service.NoDelays())
	auth := service.NewMockAuthService(service.NoDelays())

	return expenses, auth
}
