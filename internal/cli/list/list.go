package list

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/pipeline"
	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/util"
)

type listCommand struct {
}

func NewCommand() cli.Command {
	return listCommand{}
}

func (c listCommand) Description() string {
	return "List expenses with optional filters, sorting and paging"
}

var (
	public   bool
	category string
	method   string
	minStr   string
	maxStr   string
	search   string
	sortStr  string
	page     int
	pageSize int
)

func (c listCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&public, "public", false, "list the shared public expenses instead of your own")
	fs.StringVar(&category, "category", "", "only show expenses in this category")
	fs.StringVar(&method, "method", "", "only show expenses paid with this payment method")
	fs.StringVar(&minStr, "min", "", "minimum amount (inclusive)")
	fs.StringVar(&maxStr, "max", "", "maximum amount (inclusive)")
	fs.StringVar(&search, "q", "", "search note, category and payment method")
	fs.StringVar(&sortStr, "sort", "date:asc", "sort order, field:direction (date, amount or category)")
	fs.IntVar(&page, "page", 1, "page number")
	fs.IntVar(&pageSize, "size", 0, "page size (defaults to the configured page size)")
}

func (c listCommand) Run(ctx context.Context, env *cli.Env) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}

	sortOptions, err := pipeline.ParseSort(sortStr)
	if err != nil {
		return err
	}

	var expenses []storage.Expense
	if public {
		expenses, err = env.Expenses.PublicExpenses(ctx)
	} else {
		expenses, err = env.Expenses.PersonalExpenses(ctx)
	}
	if err != nil {
		return fmt.Errorf("unable to fetch expenses: %w", err)
	}

	size := pageSize
	if size == 0 {
		size = env.Config.PageSize
	}

	result := pipeline.Run(expenses, filter, sortOptions, pipeline.Page{Number: page, Size: size})

	render(env, result)
	return nil
}

func buildFilter() (*pipeline.Filter, error) {
	filter := &pipeline.Filter{Search: search}

	if category != "" {
		filter.Category = &category
	}

	if method != "" {
		filter.PaymentMethod = &method
	}

	if minStr != "" {
		val, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid min amount %q", minStr)
		}
		filter.AmountMin = &val
	}

	if maxStr != "" {
		val, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid max amount %q", maxStr)
		}
		filter.AmountMax = &val
	}

	return filter, nil
}

func render(env *cli.Env, result pipeline.Result) {
	if result.Total == 0 {
		fmt.Fprintln(env.Stdout, "no expenses match")
		return
	}

	header := fmt.Sprintf("%-5s %-17s %-10s %12s  %-8s %s",
		"ID", "DATE", "CATEGORY", "AMOUNT", "METHOD", "NOTE")
	fmt.Fprintln(env.Stdout, util.ColorOutput(header, "bold", "underline"))

	for _, e := range result.PageItems {
		// Pad before colorizing so the escape bytes don't count toward the
		// column width.
		amount := util.ColorOutput(fmt.Sprintf("%12s", formatAmount(e.Amount())), "green")
		fmt.Fprintf(env.Stdout, "%-5d %-17s %-10s %s  %-8s %s\n",
			e.ID(), e.Date(), e.Category(), amount, e.PaymentMethod(), e.Note())
	}

	footer := fmt.Sprintf("page %d of %d (%d matching)", result.Page, result.TotalPages, result.Total)
	fmt.Fprintln(env.Stdout, util.ColorOutput(footer, "faint"))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
