package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NasmeenI/tablebook/internal/catalog"
	"github.com/NasmeenI/tablebook/internal/models"
)

type restaurantsLoadedMsg struct {
	restaurants []models.Restaurant
}

type restaurantsErrorMsg struct {
	err error
}

type openReserveMsg struct {
	restaurant *models.Restaurant
}

type BrowseModel struct {
	restaurants []models.Restaurant
	categories  []string
	active      string
	searchInput string
	searching   bool
	cursor      int
	loading     bool
	loaded      bool
	err         error
	deps        Deps
}

func NewBrowseModel(deps Deps) *BrowseModel {
	return &BrowseModel{
		active: catalog.CategoryAll,
		deps:   deps,
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) capturingInput() bool {
	return m.searching
}

func (m *BrowseModel) loadIfNeeded() tea.Cmd {
	if m.loaded || m.loading {
		return nil
	}
	m.loading = true
	return listRestaurantsCmd(m.deps)
}

func listRestaurantsCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		restaurants, err := deps.Client.ListRestaurants(context.Background())
		if err != nil {
			return restaurantsErrorMsg{err: err}
		}
		return restaurantsLoadedMsg{restaurants: restaurants}
	}
}

func (m *BrowseModel) visible() []models.Restaurant {
	return catalog.Filter(m.restaurants, m.active, m.searchInput)
}

func (m *BrowseModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = 0
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case restaurantsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.restaurants = msg.restaurants
		m.categories = catalog.Categories(msg.restaurants)
		m.clampCursor()
		return m, nil

	case restaurantsErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if m.searching {
			switch key {
			case "esc", "enter":
				m.searching = false
			case "backspace":
				if len(m.searchInput) > 0 {
					m.searchInput = m.searchInput[:len(m.searchInput)-1]
					m.clampCursor()
				}
			default:
				if len(key) == 1 {
					m.searchInput += key
					m.clampCursor()
				}
			}
			return m, nil
		}

		switch key {
		case "/":
			m.searching = true
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listRestaurantsCmd(m.deps)
			}
		case "enter":
			visible := m.visible()
			if m.cursor < len(visible) {
				restaurant := visible[m.cursor]
				return m, func() tea.Msg { return openReserveMsg{restaurant: &restaurant} }
			}
		default:
			// Number keys select categories; re-selecting the active one
			// clears the filter back to All.
			if len(key) == 1 && key >= "1" && key <= "9" {
				idx := int(key[0] - '1')
				if idx < len(m.categories) {
					m.active = catalog.Toggle(m.active, m.categories[idx])
					m.cursor = 0
				}
			}
		}
	}

	return m, nil
}

func (m *BrowseModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("EXPLORE RESTAURANTS")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n")

	// Category bar
	if len(m.categories) > 0 {
		var tabs []string
		for i, c := range m.categories {
			label := fmt.Sprintf("%d %s", i+1, c)
			if c == m.active {
				tabs = append(tabs, ActiveCategoryStyle.Render(label))
			} else {
				tabs = append(tabs, CategoryStyle.Render(label))
			}
		}
		b.WriteString(centered(80, lipgloss.JoinHorizontal(lipgloss.Center, tabs...)))
		b.WriteString("\n")
	}

	// Search box
	searchStyle := InputStyle
	if m.searching {
		searchStyle = FocusedInputStyle
	}
	searchLine := LabelStyle.Width(10).Render("Search:") + searchStyle.Width(50).Render(m.searchInput)
	b.WriteString(centered(80, searchLine))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(centered(80, InfoStyle.Render("⏳ Loading restaurants...")))
		b.WriteString("\n")

	case m.err != nil:
		b.WriteString(centered(80, ErrorStyle.Render("❌ "+m.err.Error())))
		b.WriteString("\n")

	default:
		visible := m.visible()
		if len(visible) == 0 {
			empty := InfoStyle.Render("No restaurants found. Try changing your search or category filter.")
			b.WriteString(centered(80, empty))
			b.WriteString("\n")
		}

		for i, r := range visible {
			border := Muted
			if i == m.cursor {
				border = Accent
			}

			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(border).
				Padding(0, 2).
				Width(70)

			name := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(r.Name)
			badge := BadgeStyle.Render(r.Type)
			seats := lipgloss.NewStyle().Foreground(Muted).Render(fmt.Sprintf("  %d seats", r.MaxSeats))
			topLine := name + "  " + badge + seats

			address := lipgloss.NewStyle().Foreground(Text).Render("📍 " + r.Address)
			hours := lipgloss.NewStyle().Foreground(Secondary).Render("🕒 " + r.OpenTime + " – " + r.CloseTime)

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, topLine, address, hours))
			b.WriteString(centered(80, card))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  enter reserve  •  1-9 category  •  / search  •  r refresh  •  q back")
	b.WriteString(centered(80, help))

	return BoxStyle.Width(78).Render(b.String())
}
