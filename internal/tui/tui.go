// Package tui implements the interactive terminal client built on Bubble Tea.
// It drives two programs in sequence: the login flow (welcome, login,
// register screens) and the main loop (item list, detail, create/edit form).
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ebolotov/itemvault/internal/adapter"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/models"
)

// TUI is the terminal user interface of the itemvault client.
type TUI struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// New creates a TUI backed by the given server adapter.
func New(serverAdapter adapter.ServerAdapter, log *logger.Logger) (*TUI, error) {
	return &TUI{adapter: serverAdapter, logger: log}, nil
}

// LoginFlow runs the authentication screens until the user either signs in or
// leaves the program. Returns [ErrUserQuit] when the user quits without
// authenticating; on success the adapter already holds the bearer token.
func (t *TUI) LoginFlow(ctx context.Context) (models.UserResponse, error) {
	model := newLoginAppModel(ctx, t.adapter)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.UserResponse{}, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return models.UserResponse{}, tea.ErrProgramKilled
	}
	if result.err != nil {
		return models.UserResponse{}, result.err
	}

	return result.resultUser, nil
}

// MainLoop runs the item screens until the user quits or logs out. The
// returned logout flag tells the caller to restart the login flow instead of
// exiting.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainAppModel(ctx, t.adapter)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
