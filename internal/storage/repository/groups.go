package repository

import (
	"context"
	"fmt"

	"github.com/bventy/platform/internal/models"
)

// CreateGroup inserts a planning group and adds the creator as a member,
// in one transaction.
func (s *Storage) CreateGroup(ctx context.Context, g models.Group) (int64, error) {
	const op = "storage.CreateGroup"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO groups (name, description, creator_uid) VALUES ($1, $2, $3) RETURNING id`,
		g.Name, g.Description, g.CreatorUID).Scan(&newID)
	if err != nil {
		return 0, translateErr(op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_uid) VALUES ($1, $2)`, newID, g.CreatorUID)
	if err != nil {
		return 0, translateErr(op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListGroupsByMember returns the groups a user belongs to.
func (s *Storage) ListGroupsByMember(ctx context.Context, userUID string) ([]*models.Group, error) {
	const op = "storage.ListGroupsByMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT g.id, g.name, g.description, g.creator_uid, g.created_at
			  FROM groups g
			  JOIN group_members m ON m.group_id = g.id
			  WHERE m.user_uid = $1
			  ORDER BY g.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatorUID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
