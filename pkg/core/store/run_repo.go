package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lease_proforma/pkg/core/codec"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/engine"
)

// RunRepo persists completed projection runs: the full input snapshot and the
// full output, both as JSONB with tagged decimals.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// RunRecord is one stored run.
type RunRecord struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Input     *config.CalculationEngineInput
	Output    *engine.CalculationEngineOutput
}

// RunListing is the lightweight row returned by ListRecent.
type RunListing struct {
	ID            uuid.UUID
	RentModel     string
	ContractYears int
	CreatedAt     time.Time
}

// Save upserts a run by ID. Saving the same ID again replaces the stored
// snapshot and result, keeping the original created_at.
func (r *RunRepo) Save(ctx context.Context, id uuid.UUID, in *config.CalculationEngineInput, out *engine.CalculationEngineOutput) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	inputJSON, err := codec.EncodeInput(in)
	if err != nil {
		return fmt.Errorf("failed to encode run input: %w", err)
	}
	outputJSON, err := codec.EncodeOutput(out)
	if err != nil {
		return fmt.Errorf("failed to encode run output: %w", err)
	}

	query := `
		INSERT INTO proposal_runs (id, rent_model, contract_years, input_json, output_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			rent_model = EXCLUDED.rent_model,
			contract_years = EXCLUDED.contract_years,
			input_json = EXCLUDED.input_json,
			output_json = EXCLUDED.output_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, id, string(in.Rent.Model), in.ContractYears, inputJSON, outputJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load retrieves one stored run by ID.
func (r *RunRepo) Load(ctx context.Context, id uuid.UUID) (*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT input_json, output_json, created_at FROM proposal_runs WHERE id = $1`

	var inputJSON, outputJSON []byte
	var createdAt time.Time
	err := pool.QueryRow(ctx, query, id).Scan(&inputJSON, &outputJSON, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	in, err := codec.DecodeInput(inputJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored input: %w", err)
	}
	out, err := codec.DecodeOutput(outputJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored output: %w", err)
	}

	return &RunRecord{ID: id, CreatedAt: createdAt, Input: in, Output: out}, nil
}

// ListRecent returns the newest runs, most recent first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]RunListing, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, rent_model, contract_years, created_at
		FROM proposal_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var listings []RunListing
	for rows.Next() {
		var l RunListing
		if err := rows.Scan(&l.ID, &l.RentModel, &l.ContractYears, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}
	return listings, nil
}
