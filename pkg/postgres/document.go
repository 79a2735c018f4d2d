package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

const documentColumns = `id, company_id, document_number, title, status, revision,
	category_id, vessel_id, mandatory_read, author_id, issue_date, next_review_date`

// GetDocument retrieves a single document by id
func (d *DB) GetDocument(ctx context.Context, id string) (*db.Document, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = $1
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// InsertDocument inserts a new document record
func (d *DB) InsertDocument(ctx context.Context, doc *db.Document) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO documents (id, company_id, document_number, title, status, revision,
			category_id, vessel_id, mandatory_read, author_id, issue_date, next_review_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, doc.ID, doc.CompanyID, doc.DocumentNumber, doc.Title, doc.Status, doc.Revision,
		doc.CategoryID, doc.VesselID, doc.MandatoryRead, doc.AuthorID, doc.IssueDate,
		doc.NextReviewDate)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// UpdateDocumentStatus transitions a document conditionally on the observed status
func (d *DB) UpdateDocumentStatus(ctx context.Context, id string, from, to db.DocumentStatus) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE documents SET status = $3
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return d.resolveDocumentConflict(ctx, id)
	}
	return nil
}

// ApproveDocument moves an under-review document to approved. The issue date
// is only written if the document never had one; re-approvals keep the
// original.
func (d *DB) ApproveDocument(ctx context.Context, id string, issueDate, nextReviewDate time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE documents
		SET status = $2, issue_date = COALESCE(issue_date, $3), next_review_date = $4
		WHERE id = $1 AND status = $5
	`, id, db.DocumentApproved, issueDate, nextReviewDate, db.DocumentUnderReview)
	if err != nil {
		return fmt.Errorf("failed to approve document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return d.resolveDocumentConflict(ctx, id)
	}
	return nil
}

// SetNextReviewDate rolls the review cycle forward, conditional on the
// document still being approved
func (d *DB) SetNextReviewDate(ctx context.Context, id string, next time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE documents SET next_review_date = $2
		WHERE id = $1 AND status = $3
	`, id, next, db.DocumentApproved)
	if err != nil {
		return fmt.Errorf("failed to set next review date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return d.resolveDocumentConflict(ctx, id)
	}
	return nil
}

// InsertDocumentReview inserts a review or rejection comment record
func (d *DB) InsertDocumentReview(ctx context.Context, review *db.DocumentReview) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO document_reviews (id, document_id, reviewer_id, kind, comments, next_review_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, review.ID, review.DocumentID, review.ReviewerID, review.Kind, review.Comments,
		review.NextReviewDate, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document review: %w", err)
	}
	return nil
}

// ListDocumentReviews retrieves all review records for a document, oldest first
func (d *DB) ListDocumentReviews(ctx context.Context, documentID string) ([]db.DocumentReview, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, document_id, reviewer_id, kind, comments, next_review_date, created_at
		FROM document_reviews
		WHERE document_id = $1
		ORDER BY created_at
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document reviews: %w", err)
	}
	defer rows.Close()

	var reviews []db.DocumentReview
	for rows.Next() {
		var r db.DocumentReview
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.ReviewerID, &r.Kind, &r.Comments,
			&r.NextReviewDate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document reviews: %w", err)
	}
	return reviews, nil
}

// ListDocuments retrieves document records matching the filter
func (d *DB) ListDocuments(ctx context.Context, filter db.DocumentFilter) ([]db.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	var args []interface{}

	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if filter.VesselID != "" {
		// Vessel-scoped listings include company-wide documents
		args = append(args, filter.VesselID)
		query += fmt.Sprintf(" AND (vessel_id = $%d OR vessel_id IS NULL)", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.MandatoryOnly {
		query += " AND mandatory_read"
	}
	query += " ORDER BY document_number"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []db.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func (d *DB) resolveDocumentConflict(ctx context.Context, id string) error {
	var exists bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check document existence: %w", err)
	}
	if !exists {
		return db.ErrNotFound
	}
	return db.ErrConcurrentModification
}

func scanDocument(row pgx.Row) (*db.Document, error) {
	var doc db.Document
	err := row.Scan(&doc.ID, &doc.CompanyID, &doc.DocumentNumber, &doc.Title, &doc.Status,
		&doc.Revision, &doc.CategoryID, &doc.VesselID, &doc.MandatoryRead, &doc.AuthorID,
		&doc.IssueDate, &doc.NextReviewDate)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
