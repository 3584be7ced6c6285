package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// CreateTransaction records one movement: the transaction row, the group and
// member balance deltas, the system row touch and the audit entry all commit
// or roll back together. The meeting's open flag is re-checked inside the
// database transaction so a concurrent close cannot slip a movement in.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction, groupDelta, memberDelta float64, entry *models.AuditEntry) error {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID int64
	var open bool
	err = tx.QueryRowContext(ctx,
		"SELECT group_id, aberto FROM meetings WHERE id = ?", t.MeetingID,
	).Scan(&groupID, &open)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("meeting %d: %w", t.MeetingID, storage.ErrMeetingClosed)
	}
	if err != nil {
		return fmt.Errorf("failed to load meeting: %w", err)
	}
	if !open {
		return fmt.Errorf("meeting %d: %w", t.MeetingID, storage.ErrMeetingClosed)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (meeting_id, member_id, tipo, valor, multa, notas, criado_em)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.MeetingID, t.MemberID, t.Type, t.Amount, t.Penalty, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}

	if err := upsertBalance(ctx, tx, models.ScopeGroup, groupID, groupDelta); err != nil {
		return err
	}
	if err := upsertBalance(ctx, tx, models.ScopeMember, t.MemberID, memberDelta); err != nil {
		return err
	}
	// System row carries no delta; the upsert refreshes its timestamp.
	if err := upsertBalance(ctx, tx, models.ScopeSystem, 0, 0); err != nil {
		return err
	}

	if entry != nil {
		entry.TargetID = t.ID
		if err := appendAudit(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListMemberTransactions returns a member's movements joined with the group
// name, newest first.
func (s *SQLiteStore) ListMemberTransactions(ctx context.Context, memberID int64) ([]models.MemberTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tipo, t.valor, t.multa, t.notas, t.criado_em, g.nome
		FROM transactions t
		JOIN meetings mt ON mt.id = t.meeting_id
		JOIN groups g ON g.id = mt.group_id
		WHERE t.member_id = ?
		ORDER BY t.id DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list member transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.MemberTransaction
	for rows.Next() {
		var mt models.MemberTransaction
		if err := rows.Scan(&mt.Type, &mt.Amount, &mt.Penalty, &mt.Notes, &mt.CreatedAt, &mt.Group); err != nil {
			return nil, fmt.Errorf("failed to scan member transaction: %w", err)
		}
		txns = append(txns, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member transactions: %w", err)
	}
	return txns, nil
}

// GetBalance returns the stored running total for (scope, ref), or zero when
// no row exists yet.
func (s *SQLiteStore) GetBalance(ctx context.Context, scope models.Scope, refID int64) (float64, error) {
	var saldo float64
	err := s.db.QueryRowContext(ctx,
		"SELECT saldo FROM balances WHERE scope = ? AND ref_id = ?", scope, refID,
	).Scan(&saldo)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s balance %d: %w", scope, refID, err)
	}
	return saldo, nil
}

// DeriveBalance folds the transaction history into the value the balance row
// should hold. The system scope only ever receives zero deltas, so its
// derived value is always zero.
func (s *SQLiteStore) DeriveBalance(ctx context.Context, scope models.Scope, refID int64) (float64, error) {
	var (
		query string
		saldo float64
	)

	switch scope {
	case models.ScopeSystem:
		return 0, nil
	case models.ScopeGroup:
		query = `
			SELECT COALESCE(SUM(CASE
				WHEN t.tipo IN ('contribution','repayment','penalty') THEN t.valor + t.multa
				ELSE -t.valor
			END), 0)
			FROM transactions t
			JOIN meetings mt ON mt.id = t.meeting_id
			WHERE mt.group_id = ?`
	case models.ScopeMember:
		query = `
			SELECT COALESCE(SUM(CASE
				WHEN tipo IN ('contribution','repayment','penalty') THEN -valor
				ELSE valor
			END), 0)
			FROM transactions WHERE member_id = ?`
	default:
		return 0, fmt.Errorf("unknown balance scope %q", scope)
	}

	if err := s.db.QueryRowContext(ctx, query, refID).Scan(&saldo); err != nil {
		return 0, fmt.Errorf("failed to derive %s balance %d: %w", scope, refID, err)
	}
	return saldo, nil
}
