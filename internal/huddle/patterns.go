package huddle

import "huddle/internal/models"

const (
	// MaxComplexity caps the complexity score of a reservation
	MaxComplexity = 5.0

	baseOrderComplexity = 1.0
	tagComplexity       = 0.5
	basePrepMinutes     = 15.0
	tagPrepFactor       = 0.2
)

// DietaryCounts maps a dietary tag to how many times it was requested
type DietaryCounts map[string]int

// Increment adds one occurrence of tag, inserting it if absent.
func (c DietaryCounts) Increment(tag string) {
	c[tag]++
}

// Merge adds every count from other into c.
func (c DietaryCounts) Merge(other DietaryCounts) {
	for tag, n := range other {
		c[tag] += n
	}
}

// OrderPatterns summarizes the orders of one reservation
type OrderPatterns struct {
	TotalItems          int
	DietaryRequirements DietaryCounts
	EstimatedPrepTime   float64 // minutes
	ComplexityScore     float64 // 0-5
}

// AnalyzeOrderPatterns derives dietary counts, prep time and complexity
// from a reservation's orders. More dietary tags means more work.
func AnalyzeOrderPatterns(orders []models.Order) OrderPatterns {
	patterns := OrderPatterns{
		TotalItems:          len(orders),
		DietaryRequirements: DietaryCounts{},
	}

	for _, order := range orders {
		for _, tag := range order.DietaryTags {
			patterns.DietaryRequirements.Increment(tag)
		}

		tags := float64(len(order.DietaryTags))
		patterns.ComplexityScore = min(MaxComplexity, patterns.ComplexityScore+baseOrderComplexity+tags*tagComplexity)
		patterns.EstimatedPrepTime += basePrepMinutes * (1 + tags*tagPrepFactor)
	}

	return patterns
}
