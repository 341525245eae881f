package tui

import (
	"fmt"

	"github.com/ebolotov/itemvault/models"
)

type detailModel struct {
	item   models.Item
	status string
}

func (m detailModel) View() string {
	out := fmt.Sprintf("%s\n\n", m.item.Name)

	description := m.item.Description
	if description == "" {
		description = "—"
	}
	out += fmt.Sprintf("Описание:  %s\n", description)
	if !m.item.CreatedAt.IsZero() {
		out += fmt.Sprintf("Создана:   %s\n", m.item.CreatedAt.Format("02.01.2006 15:04"))
	}

	out += "\n" + helpStyle.Render("e редакт.  d удалить  c копир. название  esc назад")

	if m.status != "" {
		out += "\n\n" + m.status
	}

	return out
}
