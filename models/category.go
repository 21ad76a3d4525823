package models

// Category groups products in the catalogue.
type Category struct {
	SyncMeta

	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	// Color is an optional "#RRGGBB" hex code used by terminal UIs.
	Color *string `json:"color,omitempty"`
}
