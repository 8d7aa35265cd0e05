package login

import (
	"bufio"
	"context"
	"flag"
	"fmt"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/session"
	"github.com/wanderlog/expenseclient/internal/util"
	"github.com/wanderlog/expenseclient/internal/validate"
)

type loginCommand struct {
}

func NewCommand() cli.Command {
	return loginCommand{}
}

func (c loginCommand) Description() string {
	return "Sign in with an email verification code"
}

var email string

func (c loginCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&email, "email", "", "email address to sign in with")
}

func (c loginCommand) Run(ctx context.Context, env *cli.Env) error {
	emailResult := validate.Email(email)
	if !emailResult.Valid {
		return fmt.Errorf("invalid email: %s", emailResult.Err)
	}

	message, err := env.Auth.RequestVerification(ctx, emailResult.Value)
	if err != nil {
		return fmt.Errorf("unable to request a verification code: %w", err)
	}
	fmt.Fprintln(env.Stdout, message)

	fmt.Fprint(env.Stdout, "verification code: ")
	scanner := bufio.NewScanner(env.Stdin)
	if !scanner.Scan() {
		return fmt.Errorf("no verification code entered")
	}

	codeResult := validate.VerificationCode(scanner.Text())
	if !codeResult.Valid {
		return fmt.Errorf("invalid verification code: %s", codeResult.Err)
	}

	// A rejected code is a local failure the user can retry; it never clears
	// an existing session.
	result, err := env.Auth.VerifyCode(ctx, emailResult.Value, codeResult.Value)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	err = env.Session.Save(&session.Session{
		Token:     result.Credential.Token,
		TokenType: result.Credential.TokenType,
		UserID:    result.User.ID(),
		Email:     result.User.Email(),
		Name:      result.User.Name(),
		CreatedAt: result.User.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("unable to store session: %w", err)
	}

	fmt.Fprintf(env.Stdout, "signed in as %s\n", util.ColorOutput(result.User.Name(), "green", "bold"))
	return nil
}
