package cli

import (
	"context"
	"flag"
	"io"

	"github.com/wanderlog/expenseclient/internal/config"
	"github.com/wanderlog/expenseclient/internal/logger"
	"github.com/wanderlog/expenseclient/internal/service"
	"github.com/wanderlog/expenseclient/internal/session"
)

// Env carries the constructed dependencies into a subcommand. Which service
// binding sits behind the interfaces is decided once, in main.
type Env struct {
	Config   *config.Config
	Logger   *logger.Logger
	Expenses service.ExpenseService
	Auth     service.AuthService
	Session  *session.FileStore
	Stdout   io.Writer
	Stdin    io.Reader
}

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(ctx context.Context, env *Env) error
}
