// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/internal/app"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pinLength   = 4
	nameColumns = 28
)

type pickerState int

const (
	stateLoading pickerState = iota
	stateList
	statePIN
)

// pickerModel is the Bubble Tea model of the kiosk picker: a list of
// profiles, then a masked PIN entry for the selected one. A successful login
// stores the session and quits the program.
type pickerModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	state      pickerState
	profiles   []models.UserProfile
	idx        int
	pin        textinput.Model
	spinner    spinner.Model
	submitting bool
	errMsg     string

	session *models.AuthSession
}

func newPickerModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *pickerModel {
	pin := textinput.New()
	pin.Placeholder = "PIN"
	pin.CharLimit = pinLength
	pin.Width = pinLength + 2
	pin.EchoMode = textinput.EchoPassword
	pin.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &pickerModel{
		ctx:     ctx,
		adapter: serverAdapter,
		state:   stateLoading,
		pin:     pin,
		spinner: s,
	}
}

// Init implements [tea.Model]. It starts loading the profile list.
func (m *pickerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadProfiles())
}

// Update implements [tea.Model].
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profilesLoadedMsg:
		m.state = stateList
		m.errMsg = app.Describe(msg.err)
		m.profiles = msg.profiles
		if m.idx >= len(m.profiles) {
			m.idx = 0
		}
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.Describe(msg.err)
			m.pin.Reset()
			return m, nil
		}
		session := msg.session
		m.session = &session
		return m, tea.Quit

	case spinner.TickMsg:
		if m.state != stateLoading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateList:
			return m.updateList(msg)
		case statePIN:
			return m.updatePIN(msg)
		}
	}

	return m, nil
}

func (m *pickerModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.profiles)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.reload):
		m.state = stateLoading
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadProfiles())
	case key.Matches(msg, keys.enter):
		if len(m.profiles) == 0 {
			return m, nil
		}
		m.state = statePIN
		m.errMsg = ""
		m.pin.Reset()
		return m, m.pin.Focus()
	}
	return m, nil
}

func (m *pickerModel) updatePIN(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.state = stateList
		m.errMsg = ""
		m.pin.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.submitting {
			return m, nil
		}
		pin := m.pin.Value()
		if !isPINShape(pin) {
			m.errMsg = app.MsgPINFormat
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLogin(m.profiles[m.idx].ID, pin))
	}

	// only digits reach the PIN field
	if msg.Type == tea.KeyRunes && !isDigits(string(msg.Runes)) {
		return m, nil
	}

	var cmd tea.Cmd
	m.pin, cmd = m.pin.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *pickerModel) View() string {
	switch m.state {
	case stateLoading:
		return renderPage("KIOSK GATE", m.spinner.View()+" loading profiles...", "")
	case statePIN:
		return m.viewPIN()
	default:
		return m.viewList()
	}
}

func (m *pickerModel) viewList() string {
	var b strings.Builder

	if len(m.profiles) == 0 {
		b.WriteString("No profiles yet. Sign up with `kioskctl signup`.\n")
	}
	for i, p := range m.profiles {
		row := fmt.Sprintf("%-3s %-*s %s", p.Initials, nameColumns, fitText(p.Name, nameColumns), p.Role)
		if p.PinResetRequired {
			row += "  (PIN reset)"
		}
		if i == m.idx {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	m.writeError(&b)
	return renderPage("WHO IS USING THE KIOSK?", strings.TrimRight(b.String(), "\n"), "↑/↓: select │ enter: PIN │ r: reload │ q: quit")
}

func (m *pickerModel) viewPIN() string {
	p := m.profiles[m.idx]

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, avatarStyle.Render(p.Initials), "  "+p.Name))
	b.WriteString("\n\nPIN ")
	b.WriteString(m.pin.View())
	if m.submitting {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")

	m.writeError(&b)
	return renderPage("ENTER PIN", strings.TrimRight(b.String(), "\n"), "enter: log in │ esc: back")
}

func (m *pickerModel) writeError(b *strings.Builder) {
	if m.errMsg == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	b.WriteString("\n")
}

func (m *pickerModel) cmdLoadProfiles() tea.Cmd {
	ctx := m.ctx
	a := m.adapter

	return func() tea.Msg {
		profiles, err := a.Profiles(ctx)
		return profilesLoadedMsg{profiles: profiles, err: err}
	}
}

func (m *pickerModel) cmdLogin(profileID, pin string) tea.Cmd {
	ctx := m.ctx
	a := m.adapter

	return func() tea.Msg {
		session, err := a.Login(ctx, models.LoginRequest{ProfileID: profileID, PIN: pin, Kiosk: true})
		return loginResultMsg{session: session, err: err}
	}
}

func isPINShape(pin string) bool {
	return len(pin) == pinLength && isDigits(pin)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
