package export

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
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
	path := filepath.Join(t.TempDir(), "expenses.csv")
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-o", path, "-sort", "amount:desc"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "exported 5 expenses") {
		t.Errorf("Expected export confirmation, got:\n%s", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "\ufeff") {
		t.Error("Expected UTF-8 BOM at the start of the file")
	}

	lines := strings.Split(strings.TrimPrefix(content, "\ufeff"), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected header plus 5 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,date,category,amount,paymentMethod,note" {
		t.Errorf("Unexpected header line %q", lines[0])
	}
	// amount:desc puts the hotel night first.
	if !strings.HasPrefix(lines[1], "3,") {
		t.Errorf("Expected the most expensive record first, got %q", lines[1])
	}
}

func TestRunInvalidSort(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-sort", "bogus"})

	if err := cmd.Run(context.Background(), env); err == nil {
		t.Error("Expected an error for an invalid sort")
	}
}
