package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	pkgkafka "github.com/PoornaPrasan/civicpulse/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewCreated = "civic.review.created"
	TopicReviewVoted   = "civic.review.voted"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from this service.
const SourceReviewService = "review-service"

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID              string `json:"id"`
	ComplaintID     string `json:"complaint_id"`
	UserID          string `json:"user_id"`
	Rating          int    `json:"rating"`
	Category        string `json:"category"`
	ServiceProvider string `json:"service_provider"`
}

// ReviewVotedData is the payload for a review.voted event.
type ReviewVotedData struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Helpful    bool   `json:"helpful"`
	HelpfulNow int    `json:"helpful_now"`
	NotHelpful int    `json:"not_helpful_now"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:              review.ID,
		ComplaintID:     review.ComplaintID,
		UserID:          review.UserID,
		Rating:          review.Rating,
		Category:        review.Category,
		ServiceProvider: review.ServiceProvider,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("complaint_id", review.ComplaintID),
	)

	return nil
}

// PublishReviewVoted publishes a review.voted event.
func (p *Producer) PublishReviewVoted(ctx context.Context, review *domain.Review, voterID string, helpful bool) error {
	data := ReviewVotedData{
		ID:         review.ID,
		UserID:     voterID,
		Helpful:    helpful,
		HelpfulNow: review.Helpful,
		NotHelpful: review.NotHelpful,
	}

	event, err := pkgkafka.NewEvent(TopicReviewVoted, review.ID, AggregateTypeReview, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.voted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewVoted, event); err != nil {
		return fmt.Errorf("publish review.voted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.voted event",
		slog.String("review_id", review.ID),
		slog.Bool("helpful", helpful),
	)

	return nil
}
