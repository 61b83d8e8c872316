package huddle

import "huddle/internal/models"

// Response is the daily huddle report served to the kitchen
type Response struct {
	Date                 models.Date   `json:"date"`
	TotalReservations    int           `json:"total_reservations"`
	TotalGuests          int           `json:"total_guests"`
	TotalOrders          int           `json:"total_orders"`
	HighComplexityOrders int           `json:"high_complexity_orders"`
	DietaryRequirements  DietaryCounts `json:"dietary_requirements"`
	TableInsights        []Insight     `json:"table_insights"`
}

// Summarize rolls the per-reservation insights up into a huddle report.
func Summarize(date models.Date, insights []Insight) Response {
	if insights == nil {
		insights = []Insight{}
	}

	resp := Response{
		Date:                date,
		TotalReservations:   len(insights),
		DietaryRequirements: DietaryCounts{},
		TableInsights:       insights,
	}

	for _, insight := range insights {
		resp.TotalGuests += insight.PartySize
		resp.TotalOrders += len(insight.Orders)
		if insight.Complexity > HighComplexityThreshold {
			resp.HighComplexityOrders++
		}
		resp.DietaryRequirements.Merge(insight.DietaryRequirements)
	}

	return resp
}
