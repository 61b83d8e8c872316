package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"huddle/internal/models"
)

// Decode reads a diner dataset from r and validates every record.
func Decode(r io.Reader) ([]models.Diner, error) {
	var diners []models.Diner
	if err := json.NewDecoder(r).Decode(&diners); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	if diners == nil {
		return nil, errors.New("invalid dataset: expected a JSON array of diners")
	}

	if err := Validate(diners); err != nil {
		return nil, err
	}
	normalize(diners)
	return diners, nil
}

// normalize replaces missing collections with empty ones so they encode as [].
func normalize(diners []models.Diner) {
	for i := range diners {
		for j := range diners[i].Reservations {
			r := &diners[i].Reservations[j]
			if r.Orders == nil {
				r.Orders = []models.Order{}
			}
			for k := range r.Orders {
				if r.Orders[k].DietaryTags == nil {
					r.Orders[k].DietaryTags = models.DietaryTags{}
				}
			}
		}
	}
}

// Validate checks that every diner and reservation carries its required fields
func Validate(diners []models.Diner) error {
	for i, diner := range diners {
		if diner.Name == "" {
			return fmt.Errorf("diner %d: name is required", i)
		}
		for j, reservation := range diner.Reservations {
			if reservation.Date.IsZero() {
				return fmt.Errorf("diner %d (%s) reservation %d: date is required", i, diner.Name, j)
			}
			if reservation.NumberOfPeople < 1 {
				return fmt.Errorf("diner %d (%s) reservation %d: number_of_people must be positive, got %d",
					i, diner.Name, j, reservation.NumberOfPeople)
			}
		}
	}
	return nil
}

// Encode writes diners as an indented JSON dataset
func Encode(w io.Writer, diners []models.Diner) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diners)
}
