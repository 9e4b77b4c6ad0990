package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("picker closed by user")

type TUI struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

func New(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *TUI {
	return &TUI{adapter: serverAdapter, logger: logger}
}

// Picker shows the kiosk profile picker and returns the session opened by
// a successful PIN entry.
func (t *TUI) Picker(ctx context.Context) (models.AuthSession, error) {
	finalModel, err := tea.NewProgram(newPickerModel(ctx, t.adapter), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.AuthSession{}, err
	}

	result, ok := finalModel.(*pickerModel)
	if !ok {
		return models.AuthSession{}, tea.ErrProgramKilled
	}
	if result.session == nil {
		return models.AuthSession{}, ErrUserQuit
	}

	t.logger.Info().Str("profile_id", result.session.ProfileID).Msg("picker login succeeded")
	return *result.session, nil
}
