package models

// DefaultCurrency is assigned to groups created without an explicit currency.
const DefaultCurrency = "MZN"

// Group represents a savings circle. It owns members and meetings and has a
// group-scoped running balance (the pool).
type Group struct {
	// ID is the unique identifier for the group.
	ID int64 `json:"id"`

	// Name is the display name of the group.
	Name string `json:"nome"`

	// Currency is the ISO-style currency code for all amounts in the group.
	Currency string `json:"moeda"`

	// Rules is an optional free-form rules document, stored as JSON text.
	Rules string `json:"regras,omitempty"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"criado_em"`
}

// Member is one person inside a group. Members are never hard-deleted, only
// flagged inactive.
type Member struct {
	// ID is the unique identifier for the member.
	ID int64 `json:"id"`

	// GroupID is the group this member belongs to.
	GroupID int64 `json:"group_id"`

	// Name is the member's display name.
	Name string `json:"nome"`

	// Phone is an optional contact number.
	Phone string `json:"telefone,omitempty"`

	// Document is an optional identity document reference.
	Document string `json:"documento,omitempty"`

	// Active marks whether the member still participates in the group.
	Active bool `json:"ativo"`

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64 `json:"criado_em"`
}
