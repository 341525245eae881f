package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/ebolotov/itemvault/models"
)

type listModel struct {
	items   []models.Item
	idx     int
	loading bool
	spinner spinner.Model
	status  string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (models.Item, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Item{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) View() string {
	header := "itemvault"
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.loading {
		out += "Загрузка...\n"
	} else if len(m.items) == 0 {
		out += "Нет записей\n"
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s\n", cursor, fitText(item.Name, 48))
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render("n новая  enter открыть  l перелогин  q выход")
	return out
}
