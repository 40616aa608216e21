package model

import "time"

// Setting is a key-value pair in the settings table.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
