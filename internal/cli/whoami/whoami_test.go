package whoami

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

func TestRunSignedIn(t *testing.T) {
	env, out := setupEnv(t)

	result, err := env.Auth.VerifyCode(context.Background(), "test@example.com", "123456")
	if err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}
	if err = env.Session.Save(&session.Session{Token: result.Credential.Token}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err = NewCommand().Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "테스트 사용자") || !strings.Contains(output, "test@example.com") {
		t.Errorf("Expected user name and email, got:\n%s", output)
	}
	if !strings.Contains(output, "credential expires") {
		t.Errorf("Expected token expiry line, got:\n%s", output)
	}
}

func TestRunSignedOut(t *testing.T) {
	env, out := setupEnv(t)

	if err := NewCommand().Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "not signed in") {
		t.Errorf("Expected signed-out message, got:\n%s", out.String())
	}
}
