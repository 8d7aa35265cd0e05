package refresh

import (
	"context"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/service"
)

type refreshCommand struct {
}

func NewCommand() cli.Command {
	return refreshCommand{}
}

func (c refreshCommand) Description() string {
	return "Exchange the stored credential for a fresh one"
}

func (c refreshCommand) SetFlags(*flag.FlagSet) {
}

func (c refreshCommand) Run(ctx context.Context, env *cli.Env) error {
	stored, err := env.Session.Load()
	if err != nil {
		return fmt.Errorf("unable to read session: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("not signed in")
	}

	credential, err := env.Auth.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("unable to refresh the credential: %w", err)
	}

	stored.Token = credential.Token
	stored.TokenType = credential.TokenType
	if err = env.Session.Save(stored); err != nil {
		return fmt.Errorf("unable to store session: %w", err)
	}

	if expiry, ok := service.TokenExpiry(credential.Token); ok {
		fmt.Fprintf(env.Stdout, "credential refreshed, expires %s\n", expiry.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(env.Stdout, "credential refreshed")
	}

	return nil
}
