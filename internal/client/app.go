// Package client wires the terminal client together: the server adapter and
// the TUI, plus the login/main-loop cycle.
package client

import (
	"context"
	"errors"

	"github.com/ebolotov/itemvault/internal/adapter"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/tui"
)

// App is the terminal client application.
type App struct {
	adapter adapter.ServerAdapter
	tui     *tui.TUI
	logger  *logger.Logger
}

// NewApp creates the client application from an already constructed adapter
// and TUI.
func NewApp(serverAdapter adapter.ServerAdapter, ui *tui.TUI, log *logger.Logger) (*App, error) {
	return &App{adapter: serverAdapter, tui: ui, logger: log}, nil
}

// Run drives the client: the login flow first, then the main loop. A logout
// drops the bearer token and starts over; a user quit exits cleanly.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		user, err := a.tui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}
		a.logger.Info().Int64("user_id", user.ID).Str("login", user.Login).Msg("user authenticated")

		logout, err := a.tui.MainLoop(ctx)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.adapter.SetToken("")
		a.logger.Info().Int64("user_id", user.ID).Msg("user logged out")
	}
}
