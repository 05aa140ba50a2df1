package repository

import (
	"context"
	"errors"

	"gigboard/internal/database"
	"gigboard/internal/domain/review"

	"github.com/google/uuid"
)

var ErrReviewExists = errors.New("review already exists for this pair")

type ReviewRepository interface {
	Create(ctx context.Context, rev review.Review) (review.Review, error)
	ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]review.Review, error)
}

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// Create inserts the review and refreshes the reviewee's rating aggregate
// in the same transaction. The aggregate is always recomputed from the
// reviews table so it cannot drift from the underlying rows.
func (r *PostgresReviewRepository) Create(ctx context.Context, rev review.Review) (review.Review, error) {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			rev.JobID, rev.ReviewerID, rev.RevieweeID, rev.Rating, rev.Comment,
		)
		if err := row.Scan(&rev.ID, &rev.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return ErrReviewExists
			}
			return err
		}

		_, err := tx.Exec(ctx,
			`UPDATE users SET
				rating_avg = (SELECT COALESCE(avg(rating), 0) FROM reviews WHERE reviewee_id = $1),
				rating_count = (SELECT count(*) FROM reviews WHERE reviewee_id = $1),
				updated_at = now()
			 WHERE id = $1`,
			rev.RevieweeID,
		)
		return err
	})
	if err != nil {
		return review.Review{}, err
	}
	return rev, nil
}

func (r *PostgresReviewRepository) ListByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]review.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, reviewer_id, reviewee_id, rating, comment, created_at
		 FROM reviews WHERE reviewee_id = $1
		 ORDER BY created_at DESC, id DESC`,
		revieweeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]review.Review, 0)
	for rows.Next() {
		var rev review.Review
		if err := rows.Scan(&rev.ID, &rev.JobID, &rev.ReviewerID, &rev.RevieweeID,
			&rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
