package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// CreateMeeting inserts a new open meeting. The partial unique index on open
// meetings rejects a second open meeting for the same group.
func (s *SQLiteStore) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	if meeting.CreatedAt == 0 {
		meeting.CreatedAt = time.Now().Unix()
	}
	meeting.Open = true

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (group_id, data, local, notas, aberto, criado_em)
		VALUES (?, ?, ?, ?, 1, ?)`,
		meeting.GroupID, meeting.Date, meeting.Location, meeting.Notes, meeting.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("group %d: %w", meeting.GroupID, storage.ErrMeetingAlreadyOpen)
		}
		return fmt.Errorf("failed to insert meeting: %w", err)
	}

	meeting.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read meeting id: %w", err)
	}
	return nil
}

// GetMeeting retrieves a meeting by id.
func (s *SQLiteStore) GetMeeting(ctx context.Context, id int64) (*models.Meeting, error) {
	m := &models.Meeting{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, group_id, data, local, notas, aberto, criado_em
		FROM meetings WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.GroupID, &m.Date, &m.Location, &m.Notes, &m.Open, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meeting %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return m, nil
}

// ListGroupMeetings returns a group's meetings, newest date first.
func (s *SQLiteStore) ListGroupMeetings(ctx context.Context, groupID int64) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, data, local, notas, aberto, criado_em
		FROM meetings WHERE group_id = ? ORDER BY data DESC, id DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Date, &m.Location, &m.Notes, &m.Open, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meetings: %w", err)
	}
	return meetings, nil
}

// CloseMeeting marks a meeting closed.
func (s *SQLiteStore) CloseMeeting(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE meetings SET aberto = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to close meeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meeting %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
