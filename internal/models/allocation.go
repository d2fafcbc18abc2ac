package models

// Allocation maps a username to the ordered list of spot numbers the host
// recorded for it. Spot numbers keep their appearance order in the source
// text; a username holding several spots appears once with a longer list.
// Keys are case-sensitive and exact as captured.
type Allocation map[string][]int

// TotalSpots returns the number of spots recorded across all users.
func (a Allocation) TotalSpots() int {
	total := 0
	for _, spots := range a {
		total += len(spots)
	}
	return total
}
