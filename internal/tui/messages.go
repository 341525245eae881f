package tui

import "github.com/ebolotov/itemvault/models"

type authDoneMsg struct {
	user models.UserResponse
}

type authFailedMsg struct {
	err error
}

type listLoadedMsg struct {
	items []models.Item
	err   error
}

type itemLoadedMsg struct {
	item models.Item
	err  error
}

type itemSavedMsg struct {
	err error
}

type itemDeletedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
