package models

import "time"

// Submission represents a Reddit raffle post together with its comment tree.
type Submission struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Comments  []Comment `json:"comments,omitempty"`
}

// Comment is a single raw comment as fetched from Reddit. Author is empty
// when the account has been deleted.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	ParentID  string    `json:"parent_id"`
}

// AnnotatedComment is a Comment enriched with the spot count derived from the
// host's replies and, when an official allocation was found, the official
// numbers recorded for the comment's author.
type AnnotatedComment struct {
	Comment
	Spots               int   `json:"spots"`
	OfficialSpots       *int  `json:"official_spots,omitempty"`
	OfficialSpotNumbers []int `json:"official_spot_numbers,omitempty"`
}

// RaffleSummary carries the financial metadata extracted from the post title.
type RaffleSummary struct {
	PricePerSpot float64 `json:"price_per_spot"`
	TotalSpots   int     `json:"total_spots"`
	TotalValue   float64 `json:"total_value"`
}

// ReconcileResult is the output of one reconciliation run. Validation and
// OfficialAllocation are nil when no allocation could be discovered.
type ReconcileResult struct {
	Comments           []AnnotatedComment `json:"comments"`
	Validation         *ValidationReport  `json:"validation,omitempty"`
	OfficialAllocation Allocation         `json:"official_allocation,omitempty"`
}
