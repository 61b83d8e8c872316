package huddle

import "huddle/internal/models"

// Kitchen notes attached to an insight
const (
	NoteComplexOrder     = "Complex order - requires extra attention"
	NoteDietaryRestricts = "Multiple dietary restrictions - verify ingredients"

	// HighComplexityThreshold is exclusive: a score of exactly 3 is not high.
	HighComplexityThreshold = 3.0
)

// Insight is the kitchen's view of one reservation
type Insight struct {
	Name                string         `json:"name"`
	PartySize           int            `json:"party_size"`
	Orders              []models.Order `json:"orders"`
	DietaryRequirements DietaryCounts  `json:"dietary_requirements"`
	PrepTime            float64        `json:"prep_time"`
	Complexity          float64        `json:"complexity"`
	KitchenNotes        []string       `json:"kitchen_notes"`
}

// KitchenInsights builds one insight per reservation booked on target,
// diners in input order and reservations in booking order.
func KitchenInsights(diners []models.Diner, target models.Date) []Insight {
	insights := []Insight{}

	for _, diner := range diners {
		if len(diner.Reservations) == 0 {
			continue
		}

		for _, reservation := range diner.Reservations {
			if !reservation.Date.Equal(target) {
				continue
			}
			insights = append(insights, newInsight(diner.Name, reservation))
		}
	}

	return insights
}

func newInsight(name string, reservation models.Reservation) Insight {
	patterns := AnalyzeOrderPatterns(reservation.Orders)

	orders := reservation.Orders
	if orders == nil {
		orders = []models.Order{}
	}

	insight := Insight{
		Name:                name,
		PartySize:           reservation.NumberOfPeople,
		Orders:              orders,
		DietaryRequirements: patterns.DietaryRequirements,
		PrepTime:            patterns.EstimatedPrepTime,
		Complexity:          patterns.ComplexityScore,
		KitchenNotes:        []string{},
	}

	if patterns.ComplexityScore > HighComplexityThreshold {
		insight.KitchenNotes = append(insight.KitchenNotes, NoteComplexOrder)
	}
	if len(patterns.DietaryRequirements) > 0 {
		insight.KitchenNotes = append(insight.KitchenNotes, NoteDietaryRestricts)
	}

	return insight
}
