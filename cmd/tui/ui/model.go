package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/api"
	"github.com/NasmeenI/tablebook/internal/enrich"
	"github.com/NasmeenI/tablebook/internal/logger"
	"github.com/NasmeenI/tablebook/internal/session"
)

type View int

const (
	LoginView View = iota
	SignupView
	VerifyView
	MenuView
	BrowseView
	FormView
	ReservationsView
)

// Deps is everything the views share. The session store is the only owner of
// auth state; views read it and mutate it through its operations only.
type Deps struct {
	Session  *session.Store
	Client   *api.Client
	Enricher *enrich.Enricher
	Log      *logger.Logger
}

type sessionReadyMsg struct {
	authenticated bool
}

type Model struct {
	currentView  View
	login        *LoginModel
	signup       *SignupModel
	verify       *VerifyModel
	menu         *MenuModel
	browse       *BrowseModel
	form         *FormModel
	reservations *ReservationsModel
	deps         Deps
	notice       string
	width        int
	height       int
}

func NewModel(deps Deps) Model {
	return Model{
		currentView:  LoginView,
		login:        NewLoginModel(deps),
		signup:       NewSignupModel(deps),
		verify:       NewVerifyModel(deps),
		menu:         NewMenuModel(),
		browse:       NewBrowseModel(deps),
		form:         NewFormModel(deps),
		reservations: NewReservationsModel(deps),
		deps:         deps,
	}
}

func (m Model) Init() tea.Cmd {
	return initSessionCmd(m.deps.Session)
}

func initSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Init(context.Background())
		return sessionReadyMsg{authenticated: store.IsAuthenticated()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionReadyMsg:
		if msg.authenticated {
			m.currentView = MenuView
			m.notice = "Welcome back, " + m.deps.Session.User().Username
		}
		return m, nil

	case loginSuccessMsg:
		m.currentView = MenuView
		m.notice = "Login successful. Welcome back!"
		return m, nil

	case signupSuccessMsg:
		// Fresh accounts go straight to OTP verification.
		m.currentView = VerifyView
		m.notice = "Account created. Check your messages for a verification code."
		return m, nil

	case verifySuccessMsg:
		m.currentView = MenuView
		m.notice = "Your account has been verified."
		return m, nil

	case openReserveMsg:
		m.form.StartCreate(msg.restaurant)
		m.currentView = FormView
		m.notice = ""
		return m, nil

	case openEditMsg:
		m.form.StartEdit(msg.row.Restaurant, msg.row.Reservation)
		m.currentView = FormView
		m.notice = ""
		return m, nil

	case reservationSavedMsg:
		m.reservations.Invalidate()
		m.currentView = ReservationsView
		m.notice = msg.summary
		return m, m.reservations.loadIfNeeded()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// Text-entry views get the literal key.
			switch m.currentView {
			case MenuView, LoginView:
				return m, tea.Quit
			case BrowseView, ReservationsView:
				if !m.browse.capturingInput() && m.currentView == BrowseView {
					m.currentView = MenuView
					return m, nil
				}
				if m.currentView == ReservationsView && !m.reservations.dialogOpen() {
					m.currentView = MenuView
					return m, nil
				}
			}

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}

		case "esc":
			// Verification can be finished later; the account works unverified.
			if m.currentView == VerifyView && m.deps.Session.IsAuthenticated() {
				m.currentView = MenuView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updated, cmd := m.login.Update(msg)
		m.login = updated.(*LoginModel)
		return m, cmd

	case SignupView:
		updated, cmd := m.signup.Update(msg)
		m.signup = updated.(*SignupModel)
		return m, cmd

	case VerifyView:
		updated, cmd := m.verify.Update(msg)
		m.verify = updated.(*VerifyModel)
		return m, cmd

	case MenuView:
		updated, cmd := m.menu.Update(msg)
		m.menu = updated.(*MenuModel)
		if m.menu.selected != -1 {
			choice := m.menu.selected
			m.menu.selected = -1
			return m.applyMenuChoice(choice)
		}
		return m, cmd

	case BrowseView:
		updated, cmd := m.browse.Update(msg)
		m.browse = updated.(*BrowseModel)
		return m, cmd

	case FormView:
		updated, cmd := m.form.Update(msg)
		m.form = updated.(*FormModel)
		if m.form.cancelled {
			m.form.cancelled = false
			if m.form.editing() {
				m.currentView = ReservationsView
			} else {
				m.currentView = BrowseView
			}
		}
		return m, cmd

	case ReservationsView:
		updated, cmd := m.reservations.Update(msg)
		m.reservations = updated.(*ReservationsModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) applyMenuChoice(choice int) (tea.Model, tea.Cmd) {
	switch choice {
	case menuBrowse:
		m.currentView = BrowseView
		m.notice = ""
		return m, m.browse.loadIfNeeded()

	case menuReservations:
		// The history view requires a session; without one the user lands
		// back on the entry view with a notification instead of a broken page.
		if !m.deps.Session.IsAuthenticated() {
			m.currentView = LoginView
			m.notice = "Please login to view your reservations"
			return m, nil
		}
		m.currentView = ReservationsView
		m.reservations.Invalidate()
		return m, m.reservations.loadIfNeeded()

	case menuLogout:
		m.deps.Session.Logout()
		m.currentView = LoginView
		m.notice = "You have been logged out"
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.deps.Session.IsAuthenticated() && m.currentView != LoginView && m.currentView != SignupView {
		user := m.deps.Session.User()

		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + user.Username)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + user.Email + ")")

		verified := ""
		if !user.IsVerified {
			verified = lipgloss.NewStyle().
				Foreground(Warning).
				Render("  ⚠ unverified")
		}

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo + verified)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case VerifyView:
		mainContent = m.verify.View()
	case MenuView:
		mainContent = m.menu.View()
	case BrowseView:
		mainContent = m.browse.View()
	case FormView:
		mainContent = m.form.View()
	case ReservationsView:
		mainContent = m.reservations.View()
	}

	var parts []string
	if statusBar != "" {
		parts = append(parts, statusBar)
	}
	if m.notice != "" {
		parts = append(parts, centered(80, InfoStyle.Render(m.notice)))
	}
	parts = append(parts, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
