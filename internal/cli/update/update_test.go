package update

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/config"
	"github.com/wanderlog/expenseclient/internal/testutil"
)

func setupEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()

	expenses, auth := testutil.SetupMockServices(t)
	var out bytes.Buffer

	return &cli.Env{
		Config:   &config.Config{PageSize: 10},
		Logger:   testutil.TestLogger(t),
		Expenses: expenses,
		Auth:     auth,
		Stdout:   &out,
	}, &out
}

func parseFlags(t *testing.T, cmd cli.Command, args []string) {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
}

func TestRun(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-id", "2", "-amount", "3500", "-note", "라멘점 점심 (곱빼기)"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "updated expense") {
		t.Errorf("Expected update confirmation, got:\n%s", out.String())
	}

	personal, err := env.Expenses.PersonalExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to list personal expenses: %v", err)
	}
	for _, e := range personal {
		if e.ID() != 2 {
			continue
		}
		if e.Amount() != 3500 {
			t.Errorf("Expected amount 3500, got %v", e.Amount())
		}
		if e.Category() != "식비" {
			t.Errorf("Unset fields must keep their value, category became %q", e.Category())
		}
	}
}

func TestRunOnlySetFlagsTravel(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-id", "1", "-note", ""})

	// An explicitly set empty note clears the note without touching
	// anything else.
	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	personal, err := env.Expenses.PersonalExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to list personal expenses: %v", err)
	}
	for _, e := range personal {
		if e.ID() != 1 {
			continue
		}
		if e.Note() != "" {
			t.Errorf("Expected cleared note, got %q", e.Note())
		}
		if e.Amount() != 500 {
			t.Errorf("Amount must be untouched, got %v", e.Amount())
		}
	}
}

func TestRunMissingID(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-note", "x"})

	if err := cmd.Run(context.Background(), env); err == nil {
		t.Error("Expected an error without an id")
	}
}

func TestRunNoFields(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-id", "1"})

	err := cmd.Run(context.Background(), env)
	if err == nil {
		t.Fatal("Expected an error without field flags")
	}
	if !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRunInvalidAmount(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-id", "1", "-amount", "-50"})

	if err := cmd.Run(context.Background(), env); err == nil {
		t.Error("Expected an error for a negative amount")
	}
}

func TestRunNotFound(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-id", "42", "-note", "ghost"})

	err := cmd.Run(context.Background(), env)
	if err == nil {
		t.Fatal("Expected an error for an unknown id")
	}
	if !strings.Contains(err.Error(), "expense 42 not found") {
		t.Errorf("Unexpected error: %v", err)
	}
}
