package list

import (
	"bytes"
	"context"
	"flag"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"

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

func TestNewCommand(t *testing.T) {
	if NewCommand() == nil {
		t.Error("NewCommand() returned nil")
	}
}

func TestRunPersonal(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	output := out.String()
	for _, note := range []string{"지하철 요금", "라멘점 점심", "도쿄 호텔 1박", "도쿄 타워 입장료", "기념품 구매"} {
		if !strings.Contains(output, note) {
			t.Errorf("Expected output to contain %q", note)
		}
	}
	if !strings.Contains(output, "page 1 of 1 (5 matching)") {
		t.Errorf("Expected footer in output, got:\n%s", output)
	}
}

func TestRunPublic(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-public"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "(5 matching)") {
		t.Errorf("Expected 5 public expenses, got:\n%s", out.String())
	}
}

func TestRunFiltered(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-method", "현금", "-sort", "amount:desc"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "(2 matching)") {
		t.Errorf("Expected 2 matching expenses, got:\n%s", output)
	}
	if strings.Contains(output, "도쿄 호텔 1박") {
		t.Errorf("Credit card expense must be filtered out, got:\n%s", output)
	}
	ramen := strings.Index(output, "라멘점 점심")
	subway := strings.Index(output, "지하철 요금")
	if ramen == -1 || subway == -1 || ramen > subway {
		t.Errorf("Expected descending amount order, got:\n%s", output)
	}
}

func TestRunPaged(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-page", "2", "-size", "3"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "page 2 of 2 (5 matching)") {
		t.Errorf("Expected page 2 footer, got:\n%s", out.String())
	}
}

func TestRunNoMatches(t *testing.T) {
	env, out := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-q", "does-not-exist"})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "no expenses match") {
		t.Errorf("Expected empty-state message, got:\n%s", out.String())
	}
}

func TestRunColorizedOutputKeepsAlignment(t *testing.T) {
	env, plain := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{})

	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })

	env, colored := setupEnv(t)
	parseFlags(t, cmd, []string{})
	if err := cmd.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	ansi := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	stripped := ansi.ReplaceAllString(colored.String(), "")
	if stripped != plain.String() {
		t.Errorf("Colorizing changed the column layout:\nplain:\n%s\ncolored (stripped):\n%s",
			plain.String(), stripped)
	}
}

func TestRunInvalidSort(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-sort", "note:asc"})

	if err := cmd.Run(context.Background(), env); err == nil {
		t.Error("Expected an error for an invalid sort field")
	}
}

func TestRunInvalidMin(t *testing.T) {
	env, _ := setupEnv(t)
	cmd := NewCommand()
	parseFlags(t, cmd, []string{"-min", "abc"})

	if err := cmd.Run(context.Background(), env); err == nil {
		t.Error("Expected an error for a non-numeric min amount")
	}
}
