package models

// Overview holds the system-wide KPIs for the admin dashboard.
type Overview struct {
	// Groups is the total number of groups.
	Groups int `json:"grupos"`

	// Members is the number of active members across all groups.
	Members int `json:"membros"`

	// Cash is the sum of all group-scoped balances (cash on hand).
	Cash float64 `json:"caixa"`

	// Latest is the ten most recent transactions, newest first by id.
	Latest []OverviewTransaction `json:"ultimas"`
}

// OverviewTransaction is one recent transaction joined with group and member
// names for display.
type OverviewTransaction struct {
	ID        int64           `json:"id"`
	Group     string          `json:"grupo"`
	Member    string          `json:"membro"`
	Type      TransactionType `json:"tipo"`
	Amount    float64         `json:"valor"`
	Penalty   float64         `json:"multa"`
	CreatedAt int64           `json:"criado_em"`
}

// GroupReport holds one group's balance and its contribution leaderboard.
type GroupReport struct {
	// Balance is the group's current pool balance.
	Balance float64 `json:"saldo"`

	// Contributions ranks members by their contribution-type totals,
	// descending. Ordering among equal totals is unspecified.
	Contributions []MemberContribution `json:"contribs"`
}

// MemberContribution is one row of the contribution leaderboard.
type MemberContribution struct {
	Name  string  `json:"nome"`
	Total float64 `json:"total"`
}

// MemberTransaction is one movement in a member's own history, joined with
// the group name.
type MemberTransaction struct {
	Type      TransactionType `json:"tipo"`
	Amount    float64         `json:"valor"`
	Penalty   float64         `json:"multa"`
	Notes     string          `json:"notas,omitempty"`
	CreatedAt int64           `json:"criado_em"`
	Group     string          `json:"grupo"`
}

// ReconciliationRow compares one stored balance against the value derived by
// folding the transaction history.
type ReconciliationRow struct {
	Scope   Scope   `json:"scope"`
	RefID   int64   `json:"ref_id"`
	Stored  float64 `json:"saldo"`
	Derived float64 `json:"derivado"`
	Drift   float64 `json:"desvio"`
}
