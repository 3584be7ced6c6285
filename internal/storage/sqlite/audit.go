package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

// AppendAudit appends one audit entry.
func (s *SQLiteStore) AppendAudit(ctx context.Context, entry *models.AuditEntry) error {
	return appendAudit(ctx, s.db, entry)
}

func appendAudit(ctx context.Context, q execer, entry *models.AuditEntry) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO audit_logs (user_id, acao, alvo_tabela, alvo_id, dados, criado_em)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.Action, entry.TargetTable, entry.TargetID, entry.Payload, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
