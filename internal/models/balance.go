package models

// Scope identifies which kind of entity a balance row tracks.
type Scope string

const (
	// ScopeSystem is the single system-wide row (reference 0).
	ScopeSystem Scope = "system"

	// ScopeGroup tracks one group's pool.
	ScopeGroup Scope = "group"

	// ScopeMember tracks one member's position against their group.
	ScopeMember Scope = "member"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	switch s {
	case ScopeSystem, ScopeGroup, ScopeMember:
		return true
	}
	return false
}

// Balance is a running total keyed by (scope, reference). There is exactly
// one row per (scope, reference) pair; the system scope uses reference 0.
//
// Rows are mutated only through atomic upserts driven by the ledger rule,
// never recomputed in place. See storage.Store.DeriveBalance for the
// transaction-history fold used to verify them.
type Balance struct {
	// ID is the unique identifier for the balance row.
	ID int64 `json:"id"`

	// Scope identifies the kind of entity this row tracks.
	Scope Scope `json:"scope"`

	// RefID is the group or member id, or 0 for the system scope.
	RefID int64 `json:"ref_id"`

	// Amount is the current running total.
	Amount float64 `json:"saldo"`

	// UpdatedAt is the Unix timestamp of the last mutation.
	UpdatedAt int64 `json:"atualizado_em"`
}
