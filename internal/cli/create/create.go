package create

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/export"
	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/util"
	"github.com/wanderlog/expenseclient/internal/validate"
)

type createCommand struct {
}

func NewCommand() cli.Command {
	return createCommand{}
}

func (c createCommand) Description() string {
	return "Register a new expense"
}

var (
	date     string
	category string
	amount   string
	method   string
	note     string
)

func (c createCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&date, "date", "", "expense date, YYYY-MM-DD HH:mm (defaults to now)")
	fs.StringVar(&category, "category", "", "category: "+strings.Join(storage.Categories, ", "))
	fs.StringVar(&amount, "amount", "", "amount spent")
	fs.StringVar(&method, "method", "", "payment method: "+strings.Join(storage.PaymentMethods, ", "))
	fs.StringVar(&note, "note", "", "free-text note")
}

func (c createCommand) Run(ctx context.Context, env *cli.Env) error {
	if date == "" {
		date = export.FormatDate(time.Now())
	}

	result := validate.Expense(validate.ExpenseInput{
		Date:          date,
		Category:      category,
		Amount:        amount,
		PaymentMethod: method,
		Note:          note,
	})
	if !result.Valid {
		printFieldErrors(env, result.Errors)
		return fmt.Errorf("invalid expense input")
	}

	if !storage.ValidCategory(result.Sanitized.Category) {
		return fmt.Errorf("unknown category %q (expected one of: %s)",
			result.Sanitized.Category, strings.Join(storage.Categories, ", "))
	}

	if !storage.ValidPaymentMethod(result.Sanitized.PaymentMethod) {
		return fmt.Errorf("unknown payment method %q (expected one of: %s)",
			result.Sanitized.PaymentMethod, strings.Join(storage.PaymentMethods, ", "))
	}

	created, err := env.Expenses.Create(ctx, result.Sanitized)
	if err != nil {
		return fmt.Errorf("unable to create expense: %w", err)
	}

	fmt.Fprintf(env.Stdout, "created expense %s (%s %s)\n",
		util.ColorOutput(fmt.Sprintf("#%d", created.ID()), "green", "bold"),
		created.Category(), created.Date())
	return nil
}

func printFieldErrors(env *cli.Env, errors map[string]string) {
	fields := maps.Keys(errors)
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(env.Stdout, "%s: %s\n", util.ColorOutput(field, "red", "bold"), errors[field])
	}
}
