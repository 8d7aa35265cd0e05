package refresh

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/config"
	"github.com/wanderlog/expenseclient/internal/session"
	"github.com/wanderlog/expenseclient/internal/testutil"
)

func setupEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()

	expenses, auth := testutil.SetupMockServices(t)
	sessionStore := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	var out bytes.Buffer

	return &cli.Env{
		Config:   &config.Config{PageSize: 10},
		Logger:   testutil.TestLogger(t),
		Expenses: expenses,
		Auth:     auth,
		Session:  sessionStore,
		Stdout:   &out,
	}, &out
}

func TestRun(t *testing.T) {
	env, out := setupEnv(t)

	if err := env.Session.Save(&session.Session{Token: "stale", TokenType: "bearer"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := NewCommand().Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "credential refreshed") {
		t.Errorf("Expected refresh confirmation, got:\n%s", out.String())
	}

	stored, err := env.Session.Load()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected a stored session")
	}
	if stored.Token == "stale" || stored.Token == "" {
		t.Errorf("Expected a fresh token, got %q", stored.Token)
	}
}

func TestRunWithoutSession(t *testing.T) {
	env, _ := setupEnv(t)

	err := NewCommand().Run(context.Background(), env)
	if err == nil {
		t.Fatal("Expected an error without a session")
	}
	if !strings.Contains(err.Error(), "not signed in") {
		t.Errorf("Unexpected error: %v", err)
	}
}
