package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/enrich"
	"github.com/NasmeenI/tablebook/internal/models"
	"github.com/NasmeenI/tablebook/internal/qr"
)

type rowsLoadedMsg struct {
	rows []enrich.Row
}

type rowsErrorMsg struct {
	err error
}

type reservationCancelledMsg struct{}

type cancelErrorMsg struct {
	err error
}

type openEditMsg struct {
	row enrich.Row
}

// ReservationsModel renders the user's booking history. The list is loaded
// and enriched in one command, so the view never shows rows with restaurant
// names still filling in.
type ReservationsModel struct {
	rows    []enrich.Row
	cursor  int
	loading bool
	loaded  bool
	err     error

	confirmingID string
	ticket       string

	deps Deps
}

func NewReservationsModel(deps Deps) *ReservationsModel {
	return &ReservationsModel{deps: deps}
}

func (m *ReservationsModel) Init() tea.Cmd {
	return nil
}

func (m *ReservationsModel) dialogOpen() bool {
	return m.confirmingID != "" || m.ticket != ""
}

// Invalidate forces the next loadIfNeeded to refetch.
func (m *ReservationsModel) Invalidate() {
	m.loaded = false
}

func (m *ReservationsModel) loadIfNeeded() tea.Cmd {
	if m.loaded || m.loading {
		return nil
	}
	m.loading = true
	m.err = nil
	return loadRowsCmd(m.deps)
}

func loadRowsCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		reservations, err := deps.Client.ListReservations(ctx)
		if err != nil {
			return rowsErrorMsg{err: err}
		}

		return rowsLoadedMsg{rows: deps.Enricher.Reservations(ctx, reservations)}
	}
}

func cancelReservationCmd(deps Deps, id string) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Client.DeleteReservation(context.Background(), id); err != nil {
			return cancelErrorMsg{err: err}
		}
		return reservationCancelledMsg{}
	}
}

func (m *ReservationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case rowsErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case reservationCancelledMsg:
		// The server accepted the cancellation; refetch rather than patch the
		// slice locally, so what renders is what the server holds.
		m.confirmingID = ""
		m.loaded = false
		m.loading = true
		return m, loadRowsCmd(m.deps)

	case cancelErrorMsg:
		m.confirmingID = ""
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		key := msg.String()

		if m.ticket != "" {
			m.ticket = ""
			return m, nil
		}

		if m.confirmingID != "" {
			switch key {
			case "y":
				return m, cancelReservationCmd(m.deps, m.confirmingID)
			case "n", "esc":
				m.confirmingID = ""
			}
			return m, nil
		}

		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "r":
			m.loaded = false
			return m, m.loadIfNeeded()
		case "d":
			if m.cursor < len(m.rows) {
				m.confirmingID = m.rows[m.cursor].Reservation.ID
			}
		case "e":
			if m.cursor < len(m.rows) {
				row := m.rows[m.cursor]
				return m, func() tea.Msg { return openEditMsg{row: row} }
			}
		case "v":
			if m.cursor < len(m.rows) {
				ticket, err := qr.Ticket(&m.rows[m.cursor].Reservation)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.ticket = ticket
			}
		}
	}

	return m, nil
}

func statusBadge(status string) string {
	switch status {
	case models.StatusCancelled:
		return lipgloss.NewStyle().Foreground(BgDark).Background(Error).Padding(0, 1).Render("CANCELLED")
	case models.StatusPending:
		return lipgloss.NewStyle().Foreground(BgDark).Background(Warning).Padding(0, 1).Render("PENDING")
	default:
		return lipgloss.NewStyle().Foreground(BgDark).Background(Success).Padding(0, 1).Render("CONFIRMED")
	}
}

func (m *ReservationsModel) View() string {
	if m.ticket != "" {
		var b strings.Builder
		b.WriteString(centered(80, TitleStyle.Render("RESERVATION TICKET")))
		b.WriteString("\n\n")
		b.WriteString(centered(80, m.ticket))
		b.WriteString("\n")
		b.WriteString(centered(80, InfoStyle.Render("Show this code at the restaurant  •  any key to close")))
		return BoxStyle.Width(78).Render(b.String())
	}

	var b strings.Builder

	header := TitleStyle.Render("MY RESERVATIONS")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(centered(80, InfoStyle.Render("⏳ Loading your reservations...")))
		b.WriteString("\n")

	case m.err != nil:
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")

	case len(m.rows) == 0:
		b.WriteString(centered(80, InfoStyle.Render("You have no reservations yet. Browse restaurants to book a table.")))
		b.WriteString("\n")

	default:
		for i, row := range m.rows {
			border := Muted
			if i == m.cursor {
				border = Accent
			}

			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(border).
				Padding(0, 2).
				Width(70)

			name := "Unknown restaurant"
			if row.Restaurant != nil {
				name = row.Restaurant.Name
			}

			res := row.Reservation
			start := res.StartTime.Local()
			end := res.EndTime.Local()

			topLine := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(name) +
				"  " + statusBadge(res.Status)
			when := lipgloss.NewStyle().Foreground(Text).Render(
				fmt.Sprintf("📅 %s   🕒 %s – %s",
					start.Format("Mon, 2 Jan 2006"),
					start.Format("3:04 PM"),
					end.Format("3:04 PM")))
			detail := lipgloss.NewStyle().Foreground(Secondary).Render(
				fmt.Sprintf("👥 %d guests", res.Seats))
			if res.SpecialRequests != "" {
				detail += lipgloss.NewStyle().Foreground(Muted).Render("   ✎ " + res.SpecialRequests)
			}

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, topLine, when, detail))
			b.WriteString(centered(80, card))
			b.WriteString("\n")
		}

		if m.confirmingID != "" {
			prompt := ErrorStyle.Render("Cancel this reservation? ") +
				lipgloss.NewStyle().Foreground(Text).Render("y confirm  /  n keep it")
			b.WriteString("\n")
			b.WriteString(centered(80, prompt))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  e edit  •  d cancel  •  v ticket  •  r refresh  •  q back")
	b.WriteString(centered(80, help))

	return BoxStyle.Width(78).Render(b.String())
}
