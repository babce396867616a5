package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/PoornaPrasan/civicpulse/internal/domain"
	"github.com/PoornaPrasan/civicpulse/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ComplaintClient reads complaint records from the complaint service. This
// service never writes complaints.
type ComplaintClient struct {
	baseURL    string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewComplaintClient creates a client for the complaint service.
func NewComplaintClient(baseURL string, httpClient HTTPDoer, logger *slog.Logger) *ComplaintClient {
	return &ComplaintClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

type listComplaintsResponse struct {
	Data []domain.Complaint `json:"data"`
}

// ListByUser returns the complaints submitted by the given user, in the order
// the complaint service returns them. That order is what eligibility output
// preserves.
func (c *ComplaintClient) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/complaints?submitted_by=%s", c.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create complaints request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call complaint service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "complaint-service")
	}

	var payload listComplaintsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode complaints response: %w", err)
	}

	c.logger.DebugContext(ctx, "complaints fetched",
		slog.String("user_id", userID),
		slog.Int("count", len(payload.Data)),
	)

	if payload.Data == nil {
		payload.Data = []domain.Complaint{}
	}
	return payload.Data, nil
}
