// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMeetingClosed is returned when a movement targets a meeting that
	// does not exist or is no longer open.
	ErrMeetingClosed = errors.New("invalid or closed meeting")

	// ErrMeetingAlreadyOpen is returned when creating a meeting for a group
	// that already has an open one.
	ErrMeetingAlreadyOpen = errors.New("group already has an open meeting")
)

// Store defines the persistence operations of the ledger. The abstraction
// allows swapping storage backends (SQLite, PostgreSQL, ...) without
// changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user's ID is populated.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CountUsers returns the total number of users (bootstrap check).
	CountUsers(ctx context.Context) (int, error)

	// CreateGroup persists a new group and initializes its group-scoped
	// balance to zero, atomically. The group's ID is populated.
	CreateGroup(ctx context.Context, group *models.Group) error

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// CreateMember persists a new member and initializes its member-scoped
	// balance to zero, atomically. The member's ID is populated.
	CreateMember(ctx context.Context, member *models.Member) error

	// ListGroupMembers returns the active members of a group.
	ListGroupMembers(ctx context.Context, groupID int64) ([]models.Member, error)

	// CreateMeeting persists a new open meeting. Returns
	// ErrMeetingAlreadyOpen when the group already has one open.
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error

	// GetMeeting retrieves a meeting by id. Returns ErrNotFound when the
	// meeting does not exist.
	GetMeeting(ctx context.Context, id int64) (*models.Meeting, error)

	// ListGroupMeetings returns a group's meetings, newest date first.
	ListGroupMeetings(ctx context.Context, groupID int64) ([]models.Meeting, error)

	// CloseMeeting marks a meeting closed. Closing is final.
	CloseMeeting(ctx context.Context, id int64) error

	// CreateTransaction persists the transaction, applies the group and
	// member balance deltas, touches the system balance row and appends the
	// audit entry, all inside a single database transaction. Returns
	// ErrMeetingClosed without side effects when the meeting is missing or
	// closed. The transaction's ID is populated.
	CreateTransaction(ctx context.Context, t *models.Transaction, groupDelta, memberDelta float64, entry *models.AuditEntry) error

	// ListMemberTransactions returns a member's movements, newest first.
	ListMemberTransactions(ctx context.Context, memberID int64) ([]models.MemberTransaction, error)

	// GetBalance returns the stored running total for (scope, ref), or zero
	// when no row exists yet.
	GetBalance(ctx context.Context, scope models.Scope, refID int64) (float64, error)

	// DeriveBalance folds the transaction history into the value the
	// (scope, ref) balance row should hold. Used to verify stored rows.
	DeriveBalance(ctx context.Context, scope models.Scope, refID int64) (float64, error)

	// AppendAudit appends one audit entry outside of any other write.
	AppendAudit(ctx context.Context, entry *models.AuditEntry) error

	// Overview computes the admin dashboard KPIs.
	Overview(ctx context.Context) (*models.Overview, error)

	// GroupReport computes one group's balance and contribution ranking.
	GroupReport(ctx context.Context, groupID int64) (*models.GroupReport, error)

	// Reconciliation compares every stored group and member balance against
	// its derived value.
	Reconciliation(ctx context.Context) ([]models.ReconciliationRow, error)

	// Close releases any resources held by the store.
	Close() error
}
