package sqlite

import (
	"context"
	"fmt"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

// Overview computes the admin dashboard KPIs: group count, active member
// count, cash on hand and the ten most recent transactions.
func (s *SQLiteStore) Overview(ctx context.Context) (*models.Overview, error) {
	ov := &models.Overview{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups").Scan(&ov.Groups); err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members WHERE ativo = 1").Scan(&ov.Members); err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(saldo), 0) FROM balances WHERE scope = 'group'",
	).Scan(&ov.Cash); err != nil {
		return nil, fmt.Errorf("failed to sum group balances: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, g.nome, m.nome, t.tipo, t.valor, t.multa, t.criado_em
		FROM transactions t
		JOIN meetings mt ON mt.id = t.meeting_id
		JOIN groups g ON g.id = mt.group_id
		JOIN members m ON m.id = t.member_id
		ORDER BY t.id DESC LIMIT 10`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.OverviewTransaction
		if err := rows.Scan(&t.ID, &t.Group, &t.Member, &t.Type, &t.Amount, &t.Penalty, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent transaction: %w", err)
		}
		ov.Latest = append(ov.Latest, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent transactions: %w", err)
	}

	return ov, nil
}

// GroupReport computes one group's pool balance and its contribution
// leaderboard. Only contribution-type movements count toward the ranking.
func (s *SQLiteStore) GroupReport(ctx context.Context, groupID int64) (*models.GroupReport, error) {
	saldo, err := s.GetBalance(ctx, models.ScopeGroup, groupID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.nome, SUM(CASE WHEN t.tipo = 'contribution' THEN t.valor ELSE 0 END) AS total
		FROM transactions t
		JOIN members m ON m.id = t.member_id
		JOIN meetings mt ON mt.id = t.meeting_id
		WHERE mt.group_id = ?
		GROUP BY m.id
		ORDER BY total DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rank contributions: %w", err)
	}
	defer rows.Close()

	report := &models.GroupReport{Balance: saldo}
	for rows.Next() {
		var c models.MemberContribution
		if err := rows.Scan(&c.Name, &c.Total); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		report.Contributions = append(report.Contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}

	return report, nil
}

// Reconciliation compares every stored group and member balance against the
// value derived from transaction history.
func (s *SQLiteStore) Reconciliation(ctx context.Context) ([]models.ReconciliationRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scope, ref_id, saldo FROM balances
		WHERE scope IN ('group', 'member')
		ORDER BY scope, ref_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var report []models.ReconciliationRow
	for rows.Next() {
		var r models.ReconciliationRow
		if err := rows.Scan(&r.Scope, &r.RefID, &r.Stored); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}

	for i := range report {
		derived, err := s.DeriveBalance(ctx, report[i].Scope, report[i].RefID)
		if err != nil {
			return nil, err
		}
		report[i].Derived = derived
		report[i].Drift = report[i].Stored - derived
	}

	return report, nil
}
