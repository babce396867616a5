package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	"github.com/PoornaPrasan/civicpulse/pkg/database"
	apperrors "github.com/PoornaPrasan/civicpulse/pkg/errors"
)

// ReviewRepository implements review persistence operations using PostgreSQL.
// The reviews table carries a unique constraint on (complaint_id, user_id),
// which is the multi-writer backstop for the one-review-per-complaint rule.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, complaint_id, user_id, user_name, user_avatar, rating, title,
		       content, photos, helpful, not_helpful, created_at, category,
		       location, service_provider`

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	ctx, end := database.TraceQuery(ctx, "CreateReview", query)
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ComplaintID,
		review.UserID,
		review.UserName,
		review.UserAvatar,
		review.Rating,
		review.Title,
		review.Content,
		review.Photos,
		review.Helpful,
		review.NotHelpful,
		review.CreatedAt,
		review.Category,
		review.Location,
		review.ServiceProvider,
	)
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("review", "complaint_id", review.ComplaintID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetReview", query)
	row := r.pool.QueryRow(ctx, query, id)

	review, err := scanReview(row)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// List returns all reviews in insertion order.
func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at ASC, id ASC`

	return r.queryReviews(ctx, "ListReviews", query)
}

// ListByUser returns the reviews authored by the given user, in insertion order.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	return r.queryReviews(ctx, "ListReviewsByUser", query, userID)
}

// AddVote atomically increments one vote counter and returns the updated review.
func (r *ReviewRepository) AddVote(ctx context.Context, id string, helpful bool) (*domain.Review, error) {
	column := "not_helpful"
	if helpful {
		column = "helpful"
	}

	query := fmt.Sprintf(`
		UPDATE reviews
		SET %s = %s + 1
		WHERE id = $1
		RETURNING `+reviewColumns, column, column)

	ctx, end := database.TraceQuery(ctx, "AddReviewVote", query)
	row := r.pool.QueryRow(ctx, query, id)

	review, err := scanReview(row)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("add vote: %w", err)
	}
	return review, nil
}

// Stats derives the community statistics in a single aggregate query. The
// statistics are computed from scratch on every call, never cached.
func (r *ReviewRepository) Stats(ctx context.Context) (domain.CommunityStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(rating), 0),
		       COUNT(*) FILTER (WHERE helpful > not_helpful),
		       COUNT(DISTINCT category)
		FROM reviews`

	ctx, end := database.TraceQuery(ctx, "ReviewStats", query)
	var stats domain.CommunityStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalReviews,
		&stats.AverageRating,
		&stats.HelpfulReviews,
		&stats.Categories,
	)
	end(err)
	if err != nil {
		return domain.CommunityStats{}, fmt.Errorf("review stats: %w", err)
	}
	return stats, nil
}

func (r *ReviewRepository) queryReviews(ctx context.Context, operation, query string, args ...any) ([]domain.Review, error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			end(err)
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, *review)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// scanReview reads one review from a row. Photos are stored as a text array.
func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(
		&rv.ID,
		&rv.ComplaintID,
		&rv.UserID,
		&rv.UserName,
		&rv.UserAvatar,
		&rv.Rating,
		&rv.Title,
		&rv.Content,
		&rv.Photos,
		&rv.Helpful,
		&rv.NotHelpful,
		&rv.CreatedAt,
		&rv.Category,
		&rv.Location,
		&rv.ServiceProvider,
	); err != nil {
		return nil, err
	}
	if rv.Photos == nil {
		rv.Photos = []string{}
	}
	return &rv, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
