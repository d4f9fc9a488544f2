package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"AwarenessSimulator_SecurityProject/internal/models"
)

var ErrNotFound = errors.New("storage: not found")

// SaveStepProgress marks the step completed and keeps the best score seen so far.
func SaveStepProgress(ctx context.Context, participant string, stepID, score int) error {
	d, err := conn()
	if err != nil {
		return err
	}
	_, err = d.ExecContext(ctx, `
		INSERT INTO step_progress(participant, step_id, is_completed, score_earned, completed_at)
		VALUES(?, ?, 1, ?, ?)
		ON CONFLICT(participant, step_id) DO UPDATE SET
			is_completed = 1,
			score_earned = MAX(score_earned, excluded.score_earned),
			completed_at = excluded.completed_at
	`, participant, stepID, score, time.Now().UTC().Format(timeLayout))
	return err
}

func GetStepProgress(ctx context.Context, participant string, stepID int) (models.StepProgress, error) {
	p := models.StepProgress{}
	d, err := conn()
	if err != nil {
		return p, err
	}

	var completed int
	var completedStr string
	row := d.QueryRowContext(ctx, `
		SELECT participant, step_id, is_completed, score_earned, completed_at
		FROM step_progress WHERE participant = ? AND step_id = ?
	`, participant, stepID)
	if err := row.Scan(&p.Participant, &p.StepID, &completed, &p.ScoreEarned, &completedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, ErrNotFound
		}
		return p, err
	}
	p.IsCompleted = completed == 1
	p.CompletedAt, err = time.Parse(timeLayout, completedStr)
	return p, err
}

// TotalScore sums score_earned over all completed steps of the participant.
func TotalScore(ctx context.Context, participant string) (int, error) {
	d, err := conn()
	if err != nil {
		return 0, err
	}
	var total int
	err = d.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(score_earned), 0) FROM step_progress WHERE participant = ? AND is_completed = 1`,
		participant,
	).Scan(&total)
	return total, err
}
