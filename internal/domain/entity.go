package domain

// Entity is a persisted record that names its own key and searchable text columns.
type Entity interface {
	PrimaryKey() uint
	SearchFields() []string
}

// Patch is a partial update payload. Changes maps column names to new values and
// contains only the fields the caller actually supplied.
type Patch interface {
	Target() uint
	Changes() map[string]any
}
