package models

import "time"

// Item is a single inventory record owned by a user. All item operations are
// keyed by the owner's user ID so that users can never see or modify records
// belonging to someone else.
type Item struct {
	// ID is the server-assigned unique identifier of the item.
	ID int64 `json:"id"`

	// UserID is the owner of the item. Populated from the authenticated
	// request context, never from the request body.
	UserID int64 `json:"-"`

	// Name is the required display name of the item.
	Name string `json:"name"`

	// Description is an optional free-form description.
	Description string `json:"description,omitempty"`

	// CreatedAt is the timestamp when the item was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
