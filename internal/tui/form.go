package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ebolotov/itemvault/models"
)

// formModel is the create/edit screen for a single item. When item is nil the
// form starts empty and submits a create; otherwise it is pre-filled and
// submits an update for item.ID.
type formModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	editing    bool
	itemID     int64
}

func newFormModel(item *models.Item) formModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 128
	nameInput.Width = 40
	nameInput.Focus()

	descriptionInput := textinput.New()
	descriptionInput.Placeholder = "description"
	descriptionInput.CharLimit = 512
	descriptionInput.Width = 40

	m := formModel{inputs: []textinput.Model{nameInput, descriptionInput}}

	if item != nil {
		m.editing = true
		m.itemID = item.ID
		m.inputs[0].SetValue(item.Name)
		m.inputs[1].SetValue(item.Description)
	}

	return m
}

func (m formModel) toItem() models.Item {
	return models.Item{
		ID:          m.itemID,
		Name:        strings.TrimSpace(m.inputs[0].Value()),
		Description: strings.TrimSpace(m.inputs[1].Value()),
	}
}

func (m formModel) View() string {
	title := "НОВАЯ ЗАПИСЬ"
	if m.editing {
		title = "РЕДАКТИРОВАНИЕ"
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("Название  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Описание  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Сохранить...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc назад  tab след. поле  enter сохранить"))
	return b.String()
}
