package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveOnboarding records a quiz result and marks the user as onboarded with targetRole,
// in one transaction. It returns ErrUserNotFound when the user does not exist.
func (db *DB) SaveOnboarding(ctx context.Context, userID uuid.UUID, interests, careerMatches []string, targetRole string) (*OnboardingRecord, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE users SET has_completed_onboarding = TRUE, target_role = $1, updated_at = NOW() WHERE id = $2`,
		targetRole, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	rec := &OnboardingRecord{
		UserID:        userID,
		Interests:     StringArray(interests),
		CareerMatches: StringArray(careerMatches),
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO onboarding_records (user_id, interests, career_matches)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, rec.Interests, rec.CareerMatches,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert onboarding record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit onboarding: %w", err)
	}
	return rec, nil
}

// LatestOnboarding returns the user's most recent quiz result, or nil.
func (db *DB) LatestOnboarding(ctx context.Context, userID uuid.UUID) (*OnboardingRecord, error) {
	var rec OnboardingRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, interests, career_matches, created_at
		 FROM onboarding_records WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Interests, &rec.CareerMatches, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onboarding record: %w", err)
	}
	return &rec, nil
}
