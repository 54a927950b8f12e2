package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresResponseStore is a PostgreSQL-backed ResponseStore.
//
// Schema:
//
//	CREATE TABLE submissions (
//	    id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    learner_id   TEXT NOT NULL,
//	    target_topic TEXT NOT NULL,
//	    result       JSONB NOT NULL,
//	    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE INDEX submissions_learner_idx ON submissions (learner_id, submitted_at);
type PostgresResponseStore struct {
	pool *pgxpool.Pool
}

// NewPostgresResponseStore creates a PostgreSQL-backed response store.
func NewPostgresResponseStore(pool *pgxpool.Pool) (*PostgresResponseStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresResponseStore{pool: pool}, nil
}

func (s *PostgresResponseStore) Append(ctx context.Context, sub Submission) (string, error) {
	if sub.LearnerID == "" {
		return "", fmt.Errorf("learner_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	payload, err := json.Marshal(sub.Result)
	if err != nil {
		return "", fmt.Errorf("encode scored result: %w", err)
	}

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO submissions (learner_id, target_topic, result, submitted_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text`,
		sub.LearnerID,
		sub.TargetTopic,
		payload,
		submittedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return id, nil
}

func (s *PostgresResponseStore) ListByLearner(ctx context.Context, learnerID string) ([]Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, learner_id, target_topic, result, submitted_at
		 FROM submissions
		 WHERE learner_id = $1
		 ORDER BY submitted_at ASC`,
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var payload []byte
		if err := rows.Scan(&sub.ID, &sub.LearnerID, &sub.TargetTopic, &payload, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal(payload, &sub.Result); err != nil {
			return nil, fmt.Errorf("decode scored result: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return out, nil
}
