package internal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectionOption holds the label shown to the user and the internal key.
type SelectionOption struct {
	Label   string
	Key     string
	Seeders int
}

// Model represents the state of the filterable selection prompt.
type Model struct {
	options        map[string]string // key -> "label|seeders"
	filter         string
	filteredKeys   []SelectionOption
	selected       int
	terminalWidth  int
	terminalHeight int
	scrollOffset   int
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles user input and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.terminalWidth = wsm.Width
		m.terminalHeight = wsm.Height
	}

	updateFilter := false

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.filteredKeys = []SelectionOption{{Label: "quit", Key: "-1"}}
			m.selected = 0
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "backspace":
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
				updateFilter = true
			}
		case "down":
			if m.selected < len(m.filteredKeys)-1 {
				m.selected++
			}
			if m.selected >= m.scrollOffset+m.visibleItemsCount() {
				m.scrollOffset++
			}
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			if m.selected < m.scrollOffset {
				m.scrollOffset--
			}
		default:
			if len(msg.String()) == 1 && msg.String() >= " " && msg.String() <= "~" {
				m.filter += msg.String()
				updateFilter = true
			}
		}
	}

	if updateFilter {
		m.filterOptions()
		m.selected = 0
		m.scrollOffset = 0
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Select (Ctrl+C to cancel):\n")
	b.WriteString("Filter: " + m.filter + "\n\n")

	if len(m.filteredKeys) == 0 {
		b.WriteString("No matches found.\n")
		return b.String()
	}

	visibleItems := m.visibleItemsCount()
	start := m.scrollOffset
	end := start + visibleItems
	if end > len(m.filteredKeys) {
		end = len(m.filteredKeys)
	}

	for i := start; i < end; i++ {
		entry := m.filteredKeys[i]
		prefix := "  "
		if i == m.selected {
			prefix = "> "
		}

		if entry.Seeders > 0 {
			b.WriteString(fmt.Sprintf("%s%s [%d seeders]\n", prefix, entry.Label, entry.Seeders))
		} else {
			b.WriteString(fmt.Sprintf("%s%s\n", prefix, entry.Label))
		}
	}

	return b.String()
}

func (m Model) visibleItemsCount() int {
	if m.terminalHeight <= 4 {
		return 10
	}
	return m.terminalHeight - 4
}

func (m *Model) filterOptions() {
	m.filteredKeys = []SelectionOption{}

	for key, value := range m.options {
		label, seeders := splitOptionValue(value)
		if strings.Contains(strings.ToLower(label), strings.ToLower(m.filter)) {
			m.filteredKeys = append(m.filteredKeys, SelectionOption{
				Key:     key,
				Label:   label,
				Seeders: seeders,
			})
		}
	}

	// Seeder-rich entries first, then alphabetical so catalog menus are stable.
	sort.Slice(m.filteredKeys, func(i, j int) bool {
		if m.filteredKeys[i].Seeders != m.filteredKeys[j].Seeders {
			return m.filteredKeys[i].Seeders > m.filteredKeys[j].Seeders
		}
		return m.filteredKeys[i].Label < m.filteredKeys[j].Label
	})
}

// Option values encode optional seeder counts as "label|seeders".
func splitOptionValue(value string) (string, int) {
	parts := strings.SplitN(value, "|", 2)
	label := parts[0]
	seeders := 0
	if len(parts) > 1 {
		seeders, _ = strconv.Atoi(parts[1])
	}
	return label, seeders
}

// DynamicSelect shows a selection menu and returns the selected option. A
// cancelled selection comes back with Key "-1".
func DynamicSelect(options map[string]string) (SelectionOption, error) {
	config := GetGlobalConfig()
	if config != nil && config.RofiSelection {
		return RofiSelect(options)
	}

	model := &Model{
		options:      options,
		filteredKeys: make([]SelectionOption, 0),
	}
	model.filterOptions()

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return SelectionOption{}, err
	}

	finalSelectionModel, ok := finalModel.(*Model)
	if !ok {
		return SelectionOption{}, fmt.Errorf("unexpected model type")
	}

	if finalSelectionModel.selected < len(finalSelectionModel.filteredKeys) {
		return finalSelectionModel.filteredKeys[finalSelectionModel.selected], nil
	}
	return SelectionOption{Key: "-1"}, nil
}
