package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petrossemanhica07/app-poupanca/internal/ledger"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// LedgerService records financial movements and serves balance reads. It is
// the only writer of balance rows.
type LedgerService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger}
}

// RecordInput describes one movement to record.
type RecordInput struct {
	MeetingID int64
	MemberID  int64
	Type      models.TransactionType
	Amount    float64
	Penalty   float64
	Notes     string
}

// Record validates the movement, computes the balance deltas and persists
// everything atomically. Returns the new transaction's id.
func (s *LedgerService) Record(ctx context.Context, actorID int64, in RecordInput) (int64, error) {
	if !in.Type.Valid() {
		return 0, fmt.Errorf("%w: unknown tipo %q", ErrInvalidInput, in.Type)
	}
	if in.MeetingID == 0 || in.MemberID == 0 {
		return 0, fmt.Errorf("%w: meeting_id and member_id required", ErrInvalidInput)
	}

	deltas, err := ledger.Compute(in.Type, in.Amount, in.Penalty)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	txn := &models.Transaction{
		MeetingID: in.MeetingID,
		MemberID:  in.MemberID,
		Type:      in.Type,
		Amount:    in.Amount,
		Penalty:   in.Penalty,
		Notes:     in.Notes,
	}
	entry := &models.AuditEntry{
		UserID:      actorID,
		Action:      "create",
		TargetTable: "transactions",
		Payload: auditPayload(map[string]any{
			"tipo": in.Type, "valor": in.Amount, "member_id": in.MemberID,
		}),
	}

	if err := s.store.CreateTransaction(ctx, txn, deltas.Group, deltas.Member, entry); err != nil {
		s.logger.Error("Record failed",
			"meeting_id", in.MeetingID, "member_id", in.MemberID, "tipo", in.Type, "error", err)
		return 0, err
	}

	s.logger.Info("Movement recorded",
		"transaction_id", txn.ID, "tipo", in.Type, "valor", in.Amount,
		"member_id", in.MemberID, "meeting_id", in.MeetingID)
	return txn.ID, nil
}

// GroupBalance returns a group's pool balance, zero when unknown.
func (s *LedgerService) GroupBalance(ctx context.Context, groupID int64) (float64, error) {
	return s.store.GetBalance(ctx, models.ScopeGroup, groupID)
}

// MemberBalance returns a member's balance, zero when unknown.
func (s *LedgerService) MemberBalance(ctx context.Context, memberID int64) (float64, error) {
	return s.store.GetBalance(ctx, models.ScopeMember, memberID)
}

// MemberTransactions returns a member's movement history, newest first.
func (s *LedgerService) MemberTransactions(ctx context.Context, memberID int64) ([]models.MemberTransaction, error) {
	return s.store.ListMemberTransactions(ctx, memberID)
}
