package whoami

import (
	"context"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/service"
	"github.com/wanderlog/expenseclient/internal/util"
)

type whoamiCommand struct {
}

func NewCommand() cli.Command {
	return whoamiCommand{}
}

func (c whoamiCommand) Description() string {
	return "Show the signed-in user"
}

func (c whoamiCommand) SetFlags(*flag.FlagSet) {
}

func (c whoamiCommand) Run(ctx context.Context, env *cli.Env) error {
	stored, err := env.Session.Load()
	if err != nil {
		return fmt.Errorf("unable to read session: %w", err)
	}
	if stored == nil {
		fmt.Fprintln(env.Stdout, "not signed in")
		return nil
	}

	user, err := env.Auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("unable to fetch the current user: %w", err)
	}

	fmt.Fprintf(env.Stdout, "%s <%s>\n", util.ColorOutput(user.Name(), "bold"), user.Email())

	if expiry, ok := service.TokenExpiry(stored.Token); ok {
		fmt.Fprintf(env.Stdout, "credential expires %s\n", expiry.Format("2006-01-02 15:04"))
	}

	return nil
}
