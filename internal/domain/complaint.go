package domain

import (
	"time"
)

// Complaint status constants.
const (
	ComplaintStatusSubmitted  = "submitted"
	ComplaintStatusRouted     = "routed"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// Location describes where a complaint was reported.
type Location struct {
	Address  string `json:"address"`
	District string `json:"district,omitempty"`
}

// Complaint represents a citizen-filed service issue. Complaints are owned by
// the complaint service; this service only reads them.
type Complaint struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	SubmittedBy string     `json:"submitted_by"`
	Department  string     `json:"department"`
	Location    Location   `json:"location"`
	Rating      *int       `json:"rating,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// ValidComplaintStatuses returns the set of valid complaint statuses.
func ValidComplaintStatuses() []string {
	return []string{
		ComplaintStatusSubmitted,
		ComplaintStatusRouted,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
		ComplaintStatusClosed,
	}
}

// IsValidComplaintStatus checks whether the given status string is a valid complaint status.
func IsValidComplaintStatus(status string) bool {
	for _, s := range ValidComplaintStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// EligibleComplaints returns the complaints the given user may still review:
// resolved, submitted by the user, and not yet reviewed by them. The input
// order of complaints is preserved so repeated calls produce the same sequence.
// An empty result is not an error; it means there is nothing left to review.
func EligibleComplaints(complaints []Complaint, reviews []Review, userID string) []Complaint {
	reviewed := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if r.UserID == userID {
			reviewed[r.ComplaintID] = struct{}{}
		}
	}

	eligible := make([]Complaint, 0)
	for _, c := range complaints {
		if c.Status != ComplaintStatusResolved {
			continue
		}
		if c.SubmittedBy != userID {
			continue
		}
		if _, ok := reviewed[c.ID]; ok {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}
