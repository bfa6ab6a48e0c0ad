// Package model defines the core data types shared by the store and server.
package model

import "encoding/json"

// Client is a company record identified by a slug derived from its name.
// The ID is immutable once assigned; the display name may change.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// State is a client's onboarding-checklist state: an arbitrary JSON object
// keyed by task identifier. It is always an object, never an array or scalar;
// a client without a stored state reads as the empty object.
type State = json.RawMessage

// EmptyState is the canonical state for clients with no stored state row.
var EmptyState = State(`{}`)
