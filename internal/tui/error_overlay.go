package tui

import "fmt"

// errorOverlayModel shows the last failed operation on top of the current
// screen until the user dismisses it.
type errorOverlayModel struct {
	err error
}

func (m errorOverlayModel) View() string {
	body := fmt.Sprintf("Ошибка\n\n%s\n\nenter / esc закрыть", m.err)
	return overlayBoxStyle.Render(body)
}
