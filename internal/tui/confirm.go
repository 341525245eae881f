package tui

import "fmt"

// confirmModel is the delete-confirmation overlay.
type confirmModel struct {
	itemName string
}

func (m confirmModel) View() string {
	body := fmt.Sprintf("Удалить \"%s\"?\n\ny да   n нет", m.itemName)
	return overlayBoxStyle.Render(body)
}
