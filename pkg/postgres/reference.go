package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// GetVessel retrieves a single vessel by id
func (d *DB) GetVessel(ctx context.Context, id string) (*db.Vessel, error) {
	var v db.Vessel
	err := d.pool.QueryRow(ctx, `
		SELECT id, company_id, name, imo_number, flag FROM vessels WHERE id = $1
	`, id).Scan(&v.ID, &v.CompanyID, &v.Name, &v.IMONumber, &v.Flag)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vessel: %w", err)
	}
	return &v, nil
}

// ListVessels retrieves all vessels for a company
func (d *DB) ListVessels(ctx context.Context, companyID string) ([]db.Vessel, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, company_id, name, imo_number, flag
		FROM vessels WHERE company_id = $1 ORDER BY name
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vessels: %w", err)
	}
	defer rows.Close()

	var vessels []db.Vessel
	for rows.Next() {
		var v db.Vessel
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Name, &v.IMONumber, &v.Flag); err != nil {
			return nil, fmt.Errorf("failed to scan vessel: %w", err)
		}
		vessels = append(vessels, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vessels: %w", err)
	}
	return vessels, nil
}

// GetDrillType retrieves a single drill type by id
func (d *DB) GetDrillType(ctx context.Context, id string) (*db.DrillType, error) {
	var dt db.DrillType
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, category, min_frequency_days, description
		FROM drill_types WHERE id = $1
	`, id).Scan(&dt.ID, &dt.Name, &dt.Category, &dt.MinFrequencyDays, &dt.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drill type: %w", err)
	}
	return &dt, nil
}

// ListDrillTypes retrieves all drill types
func (d *DB) ListDrillTypes(ctx context.Context) ([]db.DrillType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, category, min_frequency_days, description
		FROM drill_types ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query drill types: %w", err)
	}
	defer rows.Close()

	var types []db.DrillType
	for rows.Next() {
		var dt db.DrillType
		if err := rows.Scan(&dt.ID, &dt.Name, &dt.Category, &dt.MinFrequencyDays, &dt.Description); err != nil {
			return nil, fmt.Errorf("failed to scan drill type: %w", err)
		}
		types = append(types, dt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drill types: %w", err)
	}
	return types, nil
}

// ListActiveCrew returns active crew for a vessel, or for the whole company
// when vesselID is nil
func (d *DB) ListActiveCrew(ctx context.Context, companyID string, vesselID *string) ([]db.CrewMember, error) {
	query := `
		SELECT id, company_id, vessel_id, full_name, rank, active
		FROM crew_members WHERE company_id = $1 AND active`
	args := []interface{}{companyID}

	if vesselID != nil {
		args = append(args, *vesselID)
		query += " AND vessel_id = $2"
	}
	query += " ORDER BY full_name"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew members: %w", err)
	}
	defer rows.Close()

	var crew []db.CrewMember
	for rows.Next() {
		var c db.CrewMember
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.VesselID, &c.FullName, &c.Rank, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan crew member: %w", err)
		}
		crew = append(crew, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crew members: %w", err)
	}
	return crew, nil
}

// ListEmergencyContacts retrieves emergency contacts for a vessel, highest
// priority first
func (d *DB) ListEmergencyContacts(ctx context.Context, vesselID string) ([]db.EmergencyContact, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, vessel_id, emergency_type, name, role, phone, email, priority
		FROM emergency_contacts WHERE vessel_id = $1
		ORDER BY emergency_type, priority
	`, vesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency contacts: %w", err)
	}
	defer rows.Close()

	var contacts []db.EmergencyContact
	for rows.Next() {
		var c db.EmergencyContact
		if err := rows.Scan(&c.ID, &c.VesselID, &c.EmergencyType, &c.Name, &c.Role,
			&c.Phone, &c.Email, &c.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan emergency contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emergency contacts: %w", err)
	}
	return contacts, nil
}

// ListEmergencyProcedures retrieves emergency procedures for a vessel
func (d *DB) ListEmergencyProcedures(ctx context.Context, vesselID string) ([]db.EmergencyProcedure, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, vessel_id, emergency_type, title, steps
		FROM emergency_procedures WHERE vessel_id = $1
		ORDER BY emergency_type
	`, vesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency procedures: %w", err)
	}
	defer rows.Close()

	var procedures []db.EmergencyProcedure
	for rows.Next() {
		var p db.EmergencyProcedure
		if err := rows.Scan(&p.ID, &p.VesselID, &p.EmergencyType, &p.Title, &p.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan emergency procedure: %w", err)
		}
		procedures = append(procedures, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emergency procedures: %w", err)
	}
	return procedures, nil
}
