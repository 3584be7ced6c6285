package models

// AuditEntry is one append-only record of a mutating action. Entries are
// never updated or deleted.
type AuditEntry struct {
	ID int64 `json:"id"`

	// UserID is the acting user, or 0 for system actions (bootstrap).
	UserID int64 `json:"user_id,omitempty"`

	// Action is a short verb: "login", "create", "update".
	Action string `json:"acao"`

	// TargetTable and TargetID locate the affected row.
	TargetTable string `json:"alvo_tabela,omitempty"`
	TargetID    int64  `json:"alvo_id,omitempty"`

	// Payload is a JSON snapshot of the relevant request data.
	Payload string `json:"dados,omitempty"`

	// CreatedAt is the Unix timestamp when the entry was appended.
	CreatedAt int64 `json:"criado_em"`
}
