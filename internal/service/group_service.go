package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// GroupService manages groups, their members and their meetings.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// auditPayload serializes a snapshot map for the audit log. Serialization
// failures are swallowed; the audit row is still written without a payload.
func auditPayload(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(b)
}

// CreateGroup creates a group with a zero-initialized balance and returns
// its id.
func (s *GroupService) CreateGroup(ctx context.Context, actorID int64, name, currency, rules string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: nome required", ErrInvalidInput)
	}

	group := &models.Group{Name: name, Currency: currency, Rules: rules}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("CreateGroup failed", "error", err)
		return 0, err
	}

	if err := s.store.AppendAudit(ctx, &models.AuditEntry{
		UserID:      actorID,
		Action:      "create",
		TargetTable: "groups",
		TargetID:    group.ID,
		Payload:     auditPayload(map[string]any{"nome": group.Name, "moeda": group.Currency}),
	}); err != nil {
		s.logger.Error("Failed to audit group creation", "group_id", group.ID, "error", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group.ID, nil
}

// ListGroups returns all groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMember registers a new active member in a group and returns its id.
func (s *GroupService) AddMember(ctx context.Context, actorID, groupID int64, name, phone, document string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: nome required", ErrInvalidInput)
	}

	member := &models.Member{GroupID: groupID, Name: name, Phone: phone, Document: document}
	if err := s.store.CreateMember(ctx, member); err != nil {
		s.logger.Error("AddMember failed", "group_id", groupID, "error", err)
		return 0, err
	}

	if err := s.store.AppendAudit(ctx, &models.AuditEntry{
		UserID:      actorID,
		Action:      "create",
		TargetTable: "members",
		TargetID:    member.ID,
		Payload:     auditPayload(map[string]any{"group_id": groupID, "nome": member.Name}),
	}); err != nil {
		s.logger.Error("Failed to audit member creation", "member_id", member.ID, "error", err)
	}

	s.logger.Info("Member added", "member_id", member.ID, "group_id", groupID)
	return member.ID, nil
}

// ListMembers returns the active members of a group.
func (s *GroupService) ListMembers(ctx context.Context, groupID int64) ([]models.Member, error) {
	return s.store.ListGroupMembers(ctx, groupID)
}

// OpenMeeting creates a new open meeting for a group and returns its id.
// A group can only hold one open meeting at a time.
func (s *GroupService) OpenMeeting(ctx context.Context, actorID, groupID int64, date, location, notes string) (int64, error) {
	if date == "" {
		return 0, fmt.Errorf("%w: data required", ErrInvalidInput)
	}

	meeting := &models.Meeting{GroupID: groupID, Date: date, Location: location, Notes: notes}
	if err := s.store.CreateMeeting(ctx, meeting); err != nil {
		s.logger.Error("OpenMeeting failed", "group_id", groupID, "error", err)
		return 0, err
	}

	if err := s.store.AppendAudit(ctx, &models.AuditEntry{
		UserID:      actorID,
		Action:      "create",
		TargetTable: "meetings",
		TargetID:    meeting.ID,
		Payload:     auditPayload(map[string]any{"group_id": groupID, "data": date}),
	}); err != nil {
		s.logger.Error("Failed to audit meeting creation", "meeting_id", meeting.ID, "error", err)
	}

	s.logger.Info("Meeting opened", "meeting_id", meeting.ID, "group_id", groupID)
	return meeting.ID, nil
}

// ListMeetings returns a group's meetings, newest date first.
func (s *GroupService) ListMeetings(ctx context.Context, groupID int64) ([]models.Meeting, error) {
	return s.store.ListGroupMeetings(ctx, groupID)
}

// CloseMeeting marks a meeting closed. Closing is final; movements against a
// closed meeting are rejected.
func (s *GroupService) CloseMeeting(ctx context.Context, actorID, meetingID int64) error {
	if err := s.store.CloseMeeting(ctx, meetingID); err != nil {
		s.logger.Error("CloseMeeting failed", "meeting_id", meetingID, "error", err)
		return err
	}

	if err := s.store.AppendAudit(ctx, &models.AuditEntry{
		UserID:      actorID,
		Action:      "update",
		TargetTable: "meetings",
		TargetID:    meetingID,
		Payload:     auditPayload(map[string]any{"aberto": 0}),
	}); err != nil {
		s.logger.Error("Failed to audit meeting close", "meeting_id", meetingID, "error", err)
	}

	s.logger.Info("Meeting closed", "meeting_id", meetingID)
	return nil
}
