package mastery

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation.
//
// Schema:
//
//	CREATE TABLE mastery_records (
//	    learner_id TEXT NOT NULL,
//	    topic_id   TEXT NOT NULL,
//	    score      INT  NOT NULL CHECK (score BETWEEN 0 AND 100),
//	    status     TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (learner_id, topic_id)
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed mastery store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) MasteryMap(ctx context.Context, learnerID string) (Map, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT topic_id, score, status
		 FROM mastery_records
		 WHERE learner_id = $1`,
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query mastery records: %w", err)
	}
	defer rows.Close()

	out := make(Map)
	for rows.Next() {
		var topicID string
		var rec Record
		if err := rows.Scan(&topicID, &rec.Score, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan mastery record: %w", err)
		}
		out[topicID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mastery records: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) SetRecord(ctx context.Context, learnerID, topicID string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if learnerID == "" || topicID == "" {
		return fmt.Errorf("learner_id and topic_id are required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO mastery_records (learner_id, topic_id, score, status, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (learner_id, topic_id)
		 DO UPDATE SET score = EXCLUDED.score, status = EXCLUDED.status, updated_at = NOW()`,
		learnerID,
		topicID,
		rec.Score,
		rec.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert mastery record: %w", err)
	}
	return nil
}
