package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/session"
)

type verifySuccessMsg struct{}

type verifyErrorMsg struct {
	err error
}

type otpResentMsg struct{}

type VerifyModel struct {
	otpInput string
	loading  bool
	resent   bool
	err      error
	deps     Deps
}

func NewVerifyModel(deps Deps) *VerifyModel {
	return &VerifyModel{deps: deps}
}

func (m *VerifyModel) Init() tea.Cmd {
	return nil
}

func verifyCmd(store *session.Store, otp string) tea.Cmd {
	return func() tea.Msg {
		if err := store.VerifyOTP(context.Background(), otp); err != nil {
			return verifyErrorMsg{err: err}
		}
		return verifySuccessMsg{}
	}
}

func resendCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		if err := store.ResendOTP(context.Background()); err != nil {
			return verifyErrorMsg{err: err}
		}
		return otpResentMsg{}
	}
}

func (m *VerifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case verifySuccessMsg:
		m.loading = false
		m.err = nil
		m.otpInput = ""
		return m, nil

	case verifyErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case otpResentMsg:
		m.loading = false
		m.resent = true
		m.err = nil
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if len(m.otpInput) != 6 {
				m.err = fmt.Errorf("the verification code has 6 digits")
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.resent = false
			return m, verifyCmd(m.deps.Session, m.otpInput)
		case "ctrl+r":
			m.loading = true
			m.err = nil
			return m, resendCmd(m.deps.Session)
		case "backspace":
			if len(m.otpInput) > 0 {
				m.otpInput = m.otpInput[:len(m.otpInput)-1]
			}
		default:
			s := msg.String()
			if len(s) == 1 && s >= "0" && s <= "9" && len(m.otpInput) < 6 {
				m.otpInput += s
			}
		}
	}
	return m, nil
}

func (m *VerifyModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("✉  VERIFY YOUR ACCOUNT")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Enter the 6-digit code we sent you.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	otpField := FocusedInputStyle.Width(20).Align(lipgloss.Center).Render(m.otpInput)
	b.WriteString(centered(80, otpField))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(80, InfoStyle.Render("🔄 Working...")))
		b.WriteString("\n")
	}
	if m.resent {
		b.WriteString(centered(80, SuccessStyle.Render("✓ A new code has been sent")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("enter verify  •  ctrl+r resend code  •  esc skip for now")
	b.WriteString(centered(80, help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
