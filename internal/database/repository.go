package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/twvotelab/recall-o-meter/internal/prediction"
)

// Record is one served prediction, as persisted. Only results are stored,
// never source documents.
type Record struct {
	ID                 string    `json:"id"`
	Target             string    `json:"target"`
	TargetDisplay      string    `json:"target_display"`
	Region             string    `json:"region"`
	PredictedTurnout   float64   `json:"predicted_turnout"`
	PredictedAgreement float64   `json:"predicted_agreement"`
	WillPass           bool      `json:"will_pass"`
	Reason             string    `json:"reason"`
	PoliticalIntensity float64   `json:"political_intensity"`
	CreatedAt          time.Time `json:"created_at"`
}

// Summary aggregates the stored history for the stats endpoint.
type Summary struct {
	Count            int     `json:"count"`
	PassCount        int     `json:"pass_count"`
	MeanTurnout      float64 `json:"mean_turnout"`
	MedianTurnout    float64 `json:"median_turnout"`
	MeanAgreement    float64 `json:"mean_agreement"`
	MedianAgreement  float64 `json:"median_agreement"`
	DistinctTargets  int     `json:"distinct_targets"`
}

// Repository provides access to the prediction history.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Save persists one prediction result and returns its record.
func (r *Repository) Save(ctx context.Context, scenario prediction.ScenarioInput, result prediction.PredictionResult) (*Record, error) {
	rec := &Record{
		ID:                 uuid.NewString(),
		Target:             scenario.Target.ID,
		TargetDisplay:      scenario.Target.Display,
		Region:             scenario.Region,
		PredictedTurnout:   result.PredictedTurnout,
		PredictedAgreement: result.PredictedAgreement,
		WillPass:           result.WillPass,
		Reason:             result.Reason,
		PoliticalIntensity: result.Breakdown.Intensity,
		CreatedAt:          time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions
			(id, target, target_display, region, predicted_turnout, predicted_agreement,
			 will_pass, reason, political_intensity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Target, rec.TargetDisplay, rec.Region,
		rec.PredictedTurnout, rec.PredictedAgreement,
		rec.WillPass, rec.Reason, rec.PoliticalIntensity, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return rec, nil
}

// ListRecent returns up to limit predictions, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, target, target_display, region, predicted_turnout, predicted_agreement,
		       will_pass, reason, political_intensity, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LatestForTarget returns the newest prediction for a canonical target ID.
func (r *Repository) LatestForTarget(ctx context.Context, target string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, target, target_display, region, predicted_turnout, predicted_agreement,
		       will_pass, reason, political_intensity, created_at
		FROM predictions
		WHERE target = ?
		ORDER BY created_at DESC
		LIMIT 1`, target)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest prediction: %w", err)
	}
	return rec, nil
}

// Summarize computes aggregate statistics over the stored history.
func (r *Repository) Summarize(ctx context.Context) (*Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT predicted_turnout, predicted_agreement, will_pass, target FROM predictions`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize predictions: %w", err)
	}
	defer rows.Close()

	var turnouts, agreements []float64
	targets := make(map[string]struct{})
	summary := &Summary{}

	for rows.Next() {
		var turnout, agreement float64
		var willPass bool
		var target string
		if err := rows.Scan(&turnout, &agreement, &willPass, &target); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		turnouts = append(turnouts, turnout)
		agreements = append(agreements, agreement)
		targets[target] = struct{}{}
		summary.Count++
		if willPass {
			summary.PassCount++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.DistinctTargets = len(targets)
	if summary.Count > 0 {
		summary.MeanTurnout, _ = stats.Mean(turnouts)
		summary.MedianTurnout, _ = stats.Median(turnouts)
		summary.MeanAgreement, _ = stats.Mean(agreements)
		summary.MedianAgreement, _ = stats.Median(agreements)
	}
	return summary, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*Record, error) {
	rec := &Record{}
	err := row.Scan(&rec.ID, &rec.Target, &rec.TargetDisplay, &rec.Region,
		&rec.PredictedTurnout, &rec.PredictedAgreement,
		&rec.WillPass, &rec.Reason, &rec.PoliticalIntensity, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
