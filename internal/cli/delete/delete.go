package delete

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/storage"
)

type deleteCommand struct {
}

func NewCommand() cli.Command {
	return deleteCommand{}
}

func (c deleteCommand) Description() string {
	return "Delete an expense (it disappears from listings but is never destroyed)"
}

var id int64

func (c deleteCommand) SetFlags(fs *flag.FlagSet) {
	fs.Int64Var(&id, "id", 0, "identifier of the expense to delete")
}

func (c deleteCommand) Run(ctx context.Context, env *cli.Env) error {
	if id == 0 {
		return fmt.Errorf("you must provide the expense id to delete")
	}

	if err := env.Expenses.Delete(ctx, id); err != nil {
		var notFoundErr *storage.NotFoundError
		if errors.As(err, &notFoundErr) {
			return fmt.Errorf("expense %d not found", id)
		}
		return fmt.Errorf("unable to delete expense: %w", err)
	}

	fmt.Fprintf(env.Stdout, "deleted expense #%d\n", id)
	return nil
}
