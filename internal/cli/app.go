package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dkotelnikov/invoicehub/internal/server/config"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/repomanager"
	"github.com/dkotelnikov/invoicehub/internal/server/services"
)

type App struct {
	users *services.UserService
	in    *bufio.Reader
	out   io.Writer
}

// NewApp opens the store from the configured DSN, runs migrations, and
// returns the tool ready to create users.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, rm, err := repomanager.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		users: services.NewUserService(db, rm),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
	}, nil
}

// CreateUser prompts for a username and password (entered twice) and
// registers the account. The same validation as web signup applies.
func (a *App) CreateUser(ctx context.Context) error {

	username, err := a.GetSimpleText("Enter user name")
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}

	if !bytes.Equal(password, confirm) {
		return fmt.Errorf("passwords do not match")
	}

	user, err := a.users.Signup(ctx, username, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func (a *App) GetSimpleText(prompt string) (string, error) {
	return GetSimpleText(a.in, prompt, a.out)
}
