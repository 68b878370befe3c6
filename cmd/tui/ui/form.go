package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/models"
	"github.com/NasmeenI/tablebook/internal/schedule"
)

type reservationSavedMsg struct {
	summary string
}

type formErrorMsg struct {
	err error
}

const (
	fieldDate = iota
	fieldSlot
	fieldDuration
	fieldSeats
	fieldRequests
	formFieldCount
)

// FormModel drives both the new-reservation and the edit flow; the two differ
// only in how the fields are seeded and which API call the submit makes.
type FormModel struct {
	restaurant    *models.Restaurant
	reservationID string

	slots []string

	dateInput     string
	slotIndex     int
	durationIndex int
	seatsInput    string
	requestsInput string

	focusedInput int
	loading      bool
	cancelled    bool
	err          error
	deps         Deps
}

func NewFormModel(deps Deps) *FormModel {
	return &FormModel{deps: deps}
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func (m *FormModel) editing() bool {
	return m.reservationID != ""
}

func (m *FormModel) reset(restaurant *models.Restaurant) {
	m.restaurant = restaurant
	m.reservationID = ""
	m.slots = schedule.TimeSlots(restaurant.OpenTime, restaurant.CloseTime)
	m.dateInput = time.Now().Format("2006-01-02")
	m.slotIndex = 0
	m.durationIndex = 2
	m.seatsInput = "2"
	m.requestsInput = ""
	m.focusedInput = fieldDate
	m.loading = false
	m.cancelled = false
	m.err = nil
}

// StartCreate seeds an empty form for a fresh booking at the restaurant.
func (m *FormModel) StartCreate(restaurant *models.Restaurant) {
	m.reset(restaurant)
}

// StartEdit seeds the form from an existing reservation. The stored start/end
// pair is folded back onto the slot and duration menus; an interval that
// matches no menu entry lands on the closest one.
func (m *FormModel) StartEdit(restaurant *models.Restaurant, reservation models.Reservation) {
	if restaurant == nil {
		// Enrichment failed for this row. The form still needs opening hours
		// to offer slots, so fall back to an all-day menu.
		restaurant = &models.Restaurant{
			ID:        reservation.RestaurantID,
			Name:      "Unknown restaurant",
			OpenTime:  "0:00",
			CloseTime: "23:30",
		}
	}
	m.reset(restaurant)
	m.reservationID = reservation.ID

	start := reservation.StartTime.Local()
	m.dateInput = start.Format("2006-01-02")

	slot := schedule.ClockTime{Hour: start.Hour(), Minute: start.Minute()}.Label()
	for i, s := range m.slots {
		if s == slot {
			m.slotIndex = i
			break
		}
	}

	duration := schedule.ClassifyDuration(reservation.StartTime, reservation.EndTime)
	for i, d := range schedule.Durations {
		if d.Label == duration.Label {
			m.durationIndex = i
			break
		}
	}

	m.seatsInput = strconv.Itoa(reservation.Seats)
	m.requestsInput = reservation.SpecialRequests
}

func (m *FormModel) slot() string {
	if m.slotIndex < len(m.slots) {
		return m.slots[m.slotIndex]
	}
	return ""
}

func (m *FormModel) submit() tea.Cmd {
	date, err := time.ParseInLocation("2006-01-02", m.dateInput, time.Local)
	if err != nil {
		m.err = fmt.Errorf("please enter the date as YYYY-MM-DD")
		return nil
	}

	seats, _ := strconv.Atoi(m.seatsInput)

	req, err := schedule.Build(
		time.Now(),
		m.restaurant,
		date,
		m.slot(),
		schedule.Durations[m.durationIndex].Label,
		seats,
		m.requestsInput,
	)
	if err != nil {
		m.err = err
		return nil
	}

	m.loading = true
	m.err = nil

	deps := m.deps
	restaurant := m.restaurant
	reservationID := m.reservationID

	return func() tea.Msg {
		if reservationID != "" {
			if _, err := deps.Client.UpdateReservation(context.Background(), reservationID, req); err != nil {
				return formErrorMsg{err: err}
			}
			return reservationSavedMsg{summary: "Reservation updated"}
		}

		if _, err := deps.Client.CreateReservation(context.Background(), restaurant.ID, req); err != nil {
			return formErrorMsg{err: err}
		}
		return reservationSavedMsg{summary: "Table reserved at " + restaurant.Name}
	}
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formErrorMsg:
		// Submit was rejected; every field keeps its value so the user can
		// correct and retry.
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "tab", "down":
			m.focusedInput = (m.focusedInput + 1) % formFieldCount
			return m, nil
		case "shift+tab", "up":
			m.focusedInput = (m.focusedInput + formFieldCount - 1) % formFieldCount
			return m, nil
		case "enter":
			return m, m.submit()
		case "left":
			switch m.focusedInput {
			case fieldSlot:
				if m.slotIndex > 0 {
					m.slotIndex--
				}
			case fieldDuration:
				if m.durationIndex > 0 {
					m.durationIndex--
				}
			}
			return m, nil
		case "right":
			switch m.focusedInput {
			case fieldSlot:
				if m.slotIndex < len(m.slots)-1 {
					m.slotIndex++
				}
			case fieldDuration:
				if m.durationIndex < len(schedule.Durations)-1 {
					m.durationIndex++
				}
			}
			return m, nil
		case "backspace":
			switch m.focusedInput {
			case fieldDate:
				if len(m.dateInput) > 0 {
					m.dateInput = m.dateInput[:len(m.dateInput)-1]
				}
			case fieldSeats:
				if len(m.seatsInput) > 0 {
					m.seatsInput = m.seatsInput[:len(m.seatsInput)-1]
				}
			case fieldRequests:
				if len(m.requestsInput) > 0 {
					m.requestsInput = m.requestsInput[:len(m.requestsInput)-1]
				}
			}
			return m, nil
		}

		key := msg.String()
		if len(key) != 1 {
			return m, nil
		}
		switch m.focusedInput {
		case fieldDate:
			if (key >= "0" && key <= "9") || key == "-" {
				m.dateInput += key
			}
		case fieldSeats:
			if key >= "0" && key <= "9" && len(m.seatsInput) < 3 {
				m.seatsInput += key
			}
		case fieldRequests:
			m.requestsInput += key
		}
	}

	return m, nil
}

func (m *FormModel) View() string {
	var b strings.Builder

	action := "RESERVE A TABLE"
	if m.editing() {
		action = "EDIT RESERVATION"
	}

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("🍽  " + action)
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		Render(title))
	b.WriteString("\n")

	if m.restaurant != nil {
		sub := SubtitleStyle.Render(m.restaurant.Name) +
			lipgloss.NewStyle().Foreground(Muted).Render("  "+m.restaurant.OpenTime+" – "+m.restaurant.CloseTime)
		b.WriteString(centered(80, sub))
	}
	b.WriteString("\n\n")

	duration := schedule.Durations[m.durationIndex].Label

	fields := []struct {
		label  string
		value  string
		picker bool
	}{
		{"Date:", m.dateInput, false},
		{"Time:", m.slot(), true},
		{"Duration:", duration, true},
		{"Guests:", m.seatsInput, false},
		{"Requests:", m.requestsInput, false},
	}

	for i, f := range fields {
		label := LabelStyle.Width(15).Render(f.label)
		style := InputStyle
		if m.focusedInput == i {
			style = FocusedInputStyle
		}

		value := f.value
		if f.picker && m.focusedInput == i {
			value = "◂ " + value + " ▸"
		}

		line := lipgloss.JoinHorizontal(lipgloss.Left, label, style.Width(40).Render(value))
		b.WriteString(centered(80, line))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(centered(80, InfoStyle.Render("🔄 Saving reservation...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab next field  •  ◂ ▸ pick  •  enter save  •  esc cancel")
	b.WriteString(centered(80, help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 4).
		Width(76).
		Render(b.String())
}
