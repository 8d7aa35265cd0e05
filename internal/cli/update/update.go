package update

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/util"
	"github.com/wanderlog/expenseclient/internal/validate"
)

type updateCommand struct {
	fs *flag.FlagSet
}

func NewCommand() cli.Command {
	return &updateCommand{}
}

func (c *updateCommand) Description() string {
	return "Update fields of an existing expense"
}

var (
	id       int64
	date     string
	category string
	amount   string
	method   string
	note     string
)

func (c *updateCommand) SetFlags(fs *flag.FlagSet) {
	c.fs = fs
	fs.Int64Var(&id, "id", 0, "identifier of the expense to update")
	fs.StringVar(&date, "date", "", "new date, YYYY-MM-DD HH:mm")
	fs.StringVar(&category, "category", "", "new category")
	fs.StringVar(&amount, "amount", "", "new amount")
	fs.StringVar(&method, "method", "", "new payment method")
	fs.StringVar(&note, "note", "", "new note")
}

func (c *updateCommand) Run(ctx context.Context, env *cli.Env) error {
	if id == 0 {
		return fmt.Errorf("you must provide the expense id to update")
	}

	update, err := c.buildUpdate()
	if err != nil {
		return err
	}

	updated, err := env.Expenses.Update(ctx, id, update)
	if err != nil {
		var notFoundErr *storage.NotFoundError
		if errors.As(err, &notFoundErr) {
			return fmt.Errorf("expense %d not found", id)
		}
		return fmt.Errorf("unable to update expense: %w", err)
	}

	fmt.Fprintf(env.Stdout, "updated expense %s\n",
		util.ColorOutput(fmt.Sprintf("#%d", updated.ID()), "green", "bold"))
	return nil
}

// buildUpdate turns only the flags the user actually set into a partial
// update; everything else stays as stored.
func (c *updateCommand) buildUpdate() (storage.ExpenseUpdate, error) {
	update := storage.ExpenseUpdate{}
	var err error

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "date":
			update.Date = &date
		case "category":
			if sanitized := validate.SanitizeText(category, 50); sanitized != "" {
				update.Category = &sanitized
			}
		case "amount":
			result := validate.Amount(amount)
			if !result.Valid {
				err = fmt.Errorf("invalid amount: %s", result.Err)
				return
			}
			update.Amount = &result.Value
		case "method":
			if sanitized := validate.SanitizeText(method, 50); sanitized != "" {
				update.PaymentMethod = &sanitized
			}
		case "note":
			sanitized := validate.SanitizeText(note, 500)
			update.Note = &sanitized
		}
	})
	if err != nil {
		return storage.ExpenseUpdate{}, err
	}

	if update.Date == nil && update.Category == nil && update.Amount == nil &&
		update.PaymentMethod == nil && update.Note == nil {
		return storage.ExpenseUpdate{}, fmt.Errorf("nothing to update: set at least one field flag")
	}

	return update, nil
}
