package storage

import (
	"context"
	"time"

	"AwarenessSimulator_SecurityProject/internal/models"
)

// 고정 폭 포맷: 문자열 정렬 = 시간 정렬
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func CreateAttempt(ctx context.Context, a models.Attempt) (int, error) {
	d, err := conn()
	if err != nil {
		return 0, err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	res, err := d.ExecContext(ctx,
		`INSERT INTO attempts(participant, scenario_key, step_id, kind, result, score, attempts, transcript_path, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Participant, a.ScenarioKey, a.StepID, a.Kind, a.Result, a.Score, a.Attempts, a.TranscriptPath,
		a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// GetAttemptsByParticipant returns the participant's attempts, newest first.
func GetAttemptsByParticipant(ctx context.Context, participant string) ([]models.Attempt, error) {
	d, err := conn()
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryContext(ctx, `
		SELECT id, participant, scenario_key, step_id, kind, result, score, attempts, COALESCE(transcript_path, ''), created_at
		FROM attempts
		WHERE participant = ?
		ORDER BY created_at DESC, id DESC
	`, participant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []models.Attempt{}
	for rows.Next() {
		var a models.Attempt
		var createdStr string
		if err := rows.Scan(&a.ID, &a.Participant, &a.ScenarioKey, &a.StepID, &a.Kind, &a.Result,
			&a.Score, &a.Attempts, &a.TranscriptPath, &createdStr); err != nil {
			return nil, err
		}
		a.CreatedAt, err = time.Parse(timeLayout, createdStr)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
