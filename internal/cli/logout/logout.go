package logout

import (
	"context"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
)

type logoutCommand struct {
}

func NewCommand() cli.Command {
	return logoutCommand{}
}

func (c logoutCommand) Description() string {
	return "Sign out and discard the stored credential"
}

func (c logoutCommand) SetFlags(*flag.FlagSet) {
}

func (c logoutCommand) Run(ctx context.Context, env *cli.Env) error {
	message, err := env.Auth.Logout(ctx)
	if err != nil {
		// The credential is dropped locally even when the service call
		// fails; staying half signed-in helps nobody.
		env.Logger.Warn("Logout request failed", "error", err)
	} else {
		fmt.Fprintln(env.Stdout, message)
	}

	if err = env.Session.Clear(); err != nil {
		return fmt.Errorf("unable to clear session: %w", err)
	}

	return nil
}
