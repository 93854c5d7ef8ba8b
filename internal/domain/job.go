package domain

import "time"

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusPublished ListingStatus = "PUBLISHED"
	ListingStatusClosed    ListingStatus = "CLOSED"
)

type JobListing struct {
	ID          int32         `json:"id"`
	CompanyID   int32         `json:"company_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Status      ListingStatus `json:"status"`
	CreatedBy   int32         `json:"created_by"`
	CreatedOn   time.Time     `json:"created_on"`
}

// Active reports whether the listing counts toward the company's
// active-listing quota.
func (j *JobListing) Active() bool {
	return j.Status == ListingStatusPublished
}
