package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

const drillColumns = `id, company_id, vessel_id, drill_type_id, drill_number, status,
	status_reason, scheduled_date, actual_date, conducted_by_id, scenario,
	objectives, duration_mins, overall_rating, lessons_learned, weather, location`

// GetDrill retrieves a single drill by id
func (d *DB) GetDrill(ctx context.Context, id string) (*db.Drill, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+drillColumns+`
		FROM drills WHERE id = $1
	`, id)

	drill, err := scanDrill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drill: %w", err)
	}
	return drill, nil
}

// NextDrillSequence advances and returns the company's drill number sequence.
// The upsert runs atomically, so two concurrent schedule calls can never
// observe the same value.
func (d *DB) NextDrillSequence(ctx context.Context, companyID string) (int, error) {
	var seq int
	err := d.pool.QueryRow(ctx, `
		INSERT INTO drill_sequences (company_id, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_seq = drill_sequences.last_seq + 1
		RETURNING last_seq
	`, companyID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to advance drill sequence: %w", err)
	}
	return seq, nil
}

// InsertDrill inserts a new drill record
func (d *DB) InsertDrill(ctx context.Context, drill *db.Drill) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO drills (id, company_id, vessel_id, drill_type_id, drill_number,
			status, status_reason, scheduled_date, scenario, objectives, weather, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, drill.ID, drill.CompanyID, drill.VesselID, drill.DrillTypeID, drill.DrillNumber,
		drill.Status, drill.StatusReason, drill.ScheduledDate, drill.Scenario,
		drill.Objectives, drill.Weather, drill.Location)
	if err != nil {
		return fmt.Errorf("failed to insert drill: %w", err)
	}
	return nil
}

// UpdateDrillStatus transitions a drill conditionally on the observed status
func (d *DB) UpdateDrillStatus(ctx context.Context, id string, from, to db.DrillStatus, reason string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE drills SET status = $3, status_reason = $4
		WHERE id = $1 AND status = $2
	`, id, from, to, reason)
	if err != nil {
		return fmt.Errorf("failed to update drill status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return d.resolveDrillConflict(ctx, id)
	}
	return nil
}

// CompleteDrill persists the completion fields and all sub-records in a
// single transaction, conditional on the observed status. Either the drill
// and every sub-record commit together or nothing does.
func (d *DB) CompleteDrill(ctx context.Context, drill *db.Drill, observed db.DrillStatus,
	participants []db.DrillParticipant, evaluations []db.ObjectiveEvaluation,
	equipment []db.EquipmentCheck, deficiencies []db.DrillDeficiency) error {

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE drills
		SET status = $3, actual_date = $4, conducted_by_id = $5,
			duration_mins = $6, overall_rating = $7, lessons_learned = $8
		WHERE id = $1 AND status = $2
	`, drill.ID, observed, db.DrillCompleted, drill.ActualDate, drill.ConductedByID,
		drill.DurationMins, drill.OverallRating, drill.LessonsLearned)
	if err != nil {
		return fmt.Errorf("failed to complete drill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return d.resolveDrillConflict(ctx, drill.ID)
	}

	for _, p := range participants {
		_, err := tx.Exec(ctx, `
			INSERT INTO drill_participants (id, drill_id, crew_member_id, expected, attended, performance_rating)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.DrillID, p.CrewMemberID, p.Expected, p.Attended, p.PerformanceRating)
		if err != nil {
			return fmt.Errorf("failed to insert drill participant: %w", err)
		}
	}

	for _, e := range evaluations {
		_, err := tx.Exec(ctx, `
			INSERT INTO objective_evaluations (id, drill_id, objective_index, achieved, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, e.ID, e.DrillID, e.ObjectiveIndex, e.Achieved, e.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert objective evaluation: %w", err)
		}
	}

	for _, c := range equipment {
		_, err := tx.Exec(ctx, `
			INSERT INTO equipment_checks (id, drill_id, equipment_name, used, status)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, c.DrillID, c.EquipmentName, c.Used, c.Status)
		if err != nil {
			return fmt.Errorf("failed to insert equipment check: %w", err)
		}
	}

	for _, f := range deficiencies {
		_, err := tx.Exec(ctx, `
			INSERT INTO drill_deficiencies (id, drill_id, description, severity, corrective_action_id)
			VALUES ($1, $2, $3, $4, $5)
		`, f.ID, f.DrillID, f.Description, f.Severity, f.CorrectiveActionID)
		if err != nil {
			return fmt.Errorf("failed to insert drill deficiency: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit drill completion: %w", err)
	}
	return nil
}

// LatestCompletedDrill returns the most recently completed drill for the
// vessel and drill type. Ties are broken by the actual completion date,
// falling back to the scheduled date when absent.
func (d *DB) LatestCompletedDrill(ctx context.Context, vesselID, drillTypeID string) (*db.Drill, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+drillColumns+`
		FROM drills
		WHERE vessel_id = $1 AND drill_type_id = $2 AND status = $3
		ORDER BY COALESCE(actual_date, scheduled_date) DESC
		LIMIT 1
	`, vesselID, drillTypeID, db.DrillCompleted)

	drill, err := scanDrill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest completed drill: %w", err)
	}
	return drill, nil
}

// ListDrills retrieves drill records matching the filter
func (d *DB) ListDrills(ctx context.Context, filter db.DrillFilter) ([]db.Drill, error) {
	query := `SELECT ` + drillColumns + ` FROM drills WHERE 1=1`
	var args []interface{}

	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if filter.VesselID != "" {
		args = append(args, filter.VesselID)
		query += fmt.Sprintf(" AND vessel_id = $%d", len(args))
	}
	if filter.DrillTypeID != "" {
		args = append(args, filter.DrillTypeID)
		query += fmt.Sprintf(" AND drill_type_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CompletedAfter != nil {
		args = append(args, *filter.CompletedAfter)
		query += fmt.Sprintf(" AND actual_date >= $%d", len(args))
	}
	query += " ORDER BY scheduled_date"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drills: %w", err)
	}
	defer rows.Close()

	var drills []db.Drill
	for rows.Next() {
		drill, err := scanDrill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drill: %w", err)
		}
		drills = append(drills, *drill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drills: %w", err)
	}
	return drills, nil
}

// DeleteDrill removes a drill; participants, evaluations, deficiencies and
// equipment checks go with it via ON DELETE CASCADE.
func (d *DB) DeleteDrill(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM drills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete drill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// resolveDrillConflict distinguishes a missing drill from one another writer
// changed after the caller read it
func (d *DB) resolveDrillConflict(ctx context.Context, id string) error {
	var exists bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM drills WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check drill existence: %w", err)
	}
	if !exists {
		return db.ErrNotFound
	}
	return db.ErrConcurrentModification
}

func scanDrill(row pgx.Row) (*db.Drill, error) {
	var drill db.Drill
	err := row.Scan(&drill.ID, &drill.CompanyID, &drill.VesselID, &drill.DrillTypeID,
		&drill.DrillNumber, &drill.Status, &drill.StatusReason, &drill.ScheduledDate,
		&drill.ActualDate, &drill.ConductedByID, &drill.Scenario, &drill.Objectives,
		&drill.DurationMins, &drill.OverallRating, &drill.LessonsLearned,
		&drill.Weather, &drill.Location)
	if err != nil {
		return nil, err
	}
	return &drill, nil
}
