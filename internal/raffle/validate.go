package raffle

import (
	"sort"

	"github.com/biqgook/raffletool/internal/models"
)

// Validate cross-checks the per-user spot counts parsed from replies against
// the host's official allocation. Every username in either source lands in
// exactly one bucket. The username union is walked in sorted order so the
// report is deterministic.
func Validate(parsed map[string]int, official models.Allocation) *models.ValidationReport {
	report := &models.ValidationReport{
		Matches:      []models.MatchEntry{},
		Mismatches:   []models.MismatchEntry{},
		MissingUsers: []models.MissingEntry{},
		ExtraUsers:   []models.ExtraEntry{},
	}

	for _, spots := range official {
		report.TotalOfficialSpots += len(spots)
	}
	for _, count := range parsed {
		report.TotalParsedSpots += count
	}

	union := make(map[string]struct{}, len(parsed)+len(official))
	for user := range parsed {
		union[user] = struct{}{}
	}
	for user := range official {
		union[user] = struct{}{}
	}
	usernames := make([]string, 0, len(union))
	for user := range union {
		usernames = append(usernames, user)
	}
	sort.Strings(usernames)

	for _, user := range usernames {
		officialSpots, inOfficial := official[user]
		parsedCount, inParsed := parsed[user]

		switch {
		case inOfficial && inParsed:
			if len(officialSpots) == parsedCount {
				report.Matches = append(report.Matches, models.MatchEntry{
					Username: user,
					Spots:    len(officialSpots),
				})
			} else {
				report.Mismatches = append(report.Mismatches, models.MismatchEntry{
					Username:            user,
					OfficialSpots:       len(officialSpots),
					ParsedSpots:         parsedCount,
					OfficialSpotNumbers: officialSpots,
				})
			}
		case inOfficial:
			report.MissingUsers = append(report.MissingUsers, models.MissingEntry{
				Username:            user,
				OfficialSpots:       len(officialSpots),
				OfficialSpotNumbers: officialSpots,
			})
		default:
			report.ExtraUsers = append(report.ExtraUsers, models.ExtraEntry{
				Username:    user,
				ParsedSpots: parsedCount,
			})
		}
	}

	return report
}
