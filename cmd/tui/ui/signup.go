package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/session"
)

type signupSuccessMsg struct{}

type signupErrorMsg struct {
	err error
}

const signupFieldCount = 4

type SignupModel struct {
	emailInput    string
	passwordInput string
	usernameInput string
	phoneInput    string
	focusedInput  int
	loading       bool
	err           error
	deps          Deps
}

func NewSignupModel(deps Deps) *SignupModel {
	return &SignupModel{deps: deps}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(store *session.Store, email, password, username, phone string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Register(context.Background(), email, password, username, phone); err != nil {
			return signupErrorMsg{err: err}
		}
		return signupSuccessMsg{}
	}
}

func (m *SignupModel) field(i int) *string {
	switch i {
	case 0:
		return &m.emailInput
	case 1:
		return &m.usernameInput
	case 2:
		return &m.phoneInput
	default:
		return &m.passwordInput
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupSuccessMsg:
		m.loading = false
		m.err = nil
		m.passwordInput = ""
		return m, nil

	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % signupFieldCount
		case "shift+tab":
			m.focusedInput = (m.focusedInput + signupFieldCount - 1) % signupFieldCount
		case "enter":
			if m.emailInput == "" || !strings.Contains(m.emailInput, "@") {
				m.err = fmt.Errorf("please enter a valid email address")
				return m, nil
			}
			if len(m.usernameInput) < 2 {
				m.err = fmt.Errorf("username must be at least 2 characters")
				return m, nil
			}
			if len(m.passwordInput) < 6 {
				m.err = fmt.Errorf("password must be at least 6 characters")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, signupCmd(m.deps.Session, m.emailInput, m.passwordInput, m.usernameInput, m.phoneInput)
		case "backspace":
			field := m.field(m.focusedInput)
			if len(*field) > 0 {
				*field = (*field)[:len(*field)-1]
			}
		case "ctrl+l":
			m.emailInput = ""
			m.usernameInput = ""
			m.phoneInput = ""
			m.passwordInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				*m.field(m.focusedInput) += msg.String()
			}
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🍽  TABLEBOOK — CREATE ACCOUNT")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	labels := []string{"Email:", "Username:", "Phone:", "Password:"}
	values := []string{m.emailInput, m.usernameInput, m.phoneInput, strings.Repeat("•", len(m.passwordInput))}

	for i := range labels {
		label := LabelStyle.Width(15).Render(labels[i])
		style := InputStyle
		if m.focusedInput == i {
			style = FocusedInputStyle
		}
		field := lipgloss.JoinHorizontal(lipgloss.Left, label, style.Width(50).Render(values[i]))
		b.WriteString(centered(80, field))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(centered(80, InfoStyle.Render("🔄 Creating account...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter register  •  ctrl+l clear  •  ctrl+s login")
	b.WriteString(centered(80, help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
