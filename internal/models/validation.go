package models

// ValidationReport is the structured diff between the spot counts parsed from
// conversational replies and the host's official allocation. Every username
// lands in exactly one of the four buckets.
type ValidationReport struct {
	Matches            []MatchEntry    `json:"matches"`
	Mismatches         []MismatchEntry `json:"mismatches"`
	MissingUsers       []MissingEntry  `json:"missing_users"`
	ExtraUsers         []ExtraEntry    `json:"extra_users"`
	TotalOfficialSpots int             `json:"total_official_spots"`
	TotalParsedSpots   int             `json:"total_parsed_spots"`
}

// MatchEntry records a user whose parsed count agrees with the official one.
type MatchEntry struct {
	Username string `json:"username"`
	Spots    int    `json:"spots"`
}

// MismatchEntry records a user present in both sources with differing counts.
type MismatchEntry struct {
	Username            string `json:"username"`
	OfficialSpots       int    `json:"official_spots"`
	ParsedSpots         int    `json:"parsed_spots"`
	OfficialSpotNumbers []int  `json:"official_spot_numbers"`
}

// MissingEntry records a user in the official allocation with no parsed comments.
type MissingEntry struct {
	Username            string `json:"username"`
	OfficialSpots       int    `json:"official_spots"`
	OfficialSpotNumbers []int  `json:"official_spot_numbers"`
}

// ExtraEntry records a parsed participant absent from the official allocation.
type ExtraEntry struct {
	Username    string `json:"username"`
	ParsedSpots int    `json:"parsed_spots"`
}
