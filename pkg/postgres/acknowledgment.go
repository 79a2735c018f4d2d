package postgres

import (
	"context"
	"fmt"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// InsertAcknowledgment records a read confirmation. The (document_id, user_id)
// uniqueness constraint makes this safe under concurrent duplicate calls; a
// losing insert reports ErrDuplicateAcknowledgment without writing a row.
func (d *DB) InsertAcknowledgment(ctx context.Context, ack *db.Acknowledgment) error {
	tag, err := d.pool.Exec(ctx, `
		INSERT INTO acknowledgments (id, document_id, user_id, acknowledged_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id, user_id) DO NOTHING
	`, ack.ID, ack.DocumentID, ack.UserID, ack.AcknowledgedAt)
	if err != nil {
		return fmt.Errorf("failed to insert acknowledgment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrDuplicateAcknowledgment
	}
	return nil
}

// CountAcknowledgments returns the number of acknowledgments for a document
func (d *DB) CountAcknowledgments(ctx context.Context, documentID string) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM acknowledgments WHERE document_id = $1
	`, documentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count acknowledgments: %w", err)
	}
	return count, nil
}

// ListAcknowledgedUserIDs returns the user ids that have acknowledged a document
func (d *DB) ListAcknowledgedUserIDs(ctx context.Context, documentID string) ([]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT user_id FROM acknowledgments WHERE document_id = $1
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query acknowledgments: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan acknowledgment: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acknowledgments: %w", err)
	}
	return userIDs, nil
}
