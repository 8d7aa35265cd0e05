package export

import (
	"context"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/export"
	"github.com/wanderlog/expenseclient/internal/pipeline"
	"github.com/wanderlog/expenseclient/internal/storage"
)

type exportCommand struct {
}

func NewCommand() cli.Command {
	return exportCommand{}
}

func (c exportCommand) Description() string {
	return "Export expenses to a CSV file"
}

var (
	public  bool
	output  string
	sortStr string
)

func (c exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&public, "public", false, "export the shared public expenses instead of your own")
	fs.StringVar(&output, "o", "expenses.csv", "output file path")
	fs.StringVar(&sortStr, "sort", "date:asc", "sort order, field:direction")
}

func (c exportCommand) Run(ctx context.Context, env *cli.Env) error {
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

	// One page holding everything: the export covers the whole sorted list.
	size := len(expenses)
	if size == 0 {
		size = 1
	}
	result := pipeline.Run(expenses, nil, sortOptions, pipeline.Page{Number: 1, Size: size})

	csv := export.BuildCSV(export.ExpenseRows(result.All), nil)
	if err = export.WriteCSVFile(output, csv); err != nil {
		return fmt.Errorf("unable to write CSV file: %w", err)
	}

	fmt.Fprintf(env.Stdout, "exported %d expenses to %s\n", result.Total, output)
	return nil
}
