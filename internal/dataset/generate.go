package dataset

import (
	"math/rand"

	"github.com/jaswdr/faker"

	"huddle/internal/models"
)

// DietaryTagPool lists the tags the generator draws from
var DietaryTagPool = []string{
	"vegan",
	"vegetarian",
	"gluten-free",
	"dairy-free",
	"nut-free",
	"shellfish-free",
	"halal",
	"kosher",
	"low-sodium",
}

// GenerateOptions controls the shape of a generated dataset
type GenerateOptions struct {
	Seed            int64
	Diners          int
	Start           models.Date
	Days            int
	MaxReservations int
	MaxPartySize    int
	MaxTags         int
}

// DefaultGenerateOptions returns options for a small week-long dataset
func DefaultGenerateOptions(start models.Date) GenerateOptions {
	return GenerateOptions{
		Seed:            42,
		Diners:          50,
		Start:           start,
		Days:            7,
		MaxReservations: 3,
		MaxPartySize:    8,
		MaxTags:         3,
	}
}

// Generate builds a synthetic dataset. The same options always produce the same diners.
func Generate(opts GenerateOptions) []models.Diner {
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))
	days := max(opts.Days, 1)

	diners := make([]models.Diner, 0, opts.Diners)
	for i := 0; i < opts.Diners; i++ {
		diner := models.Diner{
			Name:         fake.Person().Name(),
			Reservations: []models.Reservation{},
		}

		for r := fake.IntBetween(0, max(opts.MaxReservations, 0)); r > 0; r-- {
			diner.Reservations = append(diner.Reservations, generateReservation(fake, opts, days))
		}
		diners = append(diners, diner)
	}
	return diners
}

func generateReservation(fake faker.Faker, opts GenerateOptions, days int) models.Reservation {
	party := fake.IntBetween(1, max(opts.MaxPartySize, 1))
	reservation := models.Reservation{
		Date:           opts.Start.AddDays(fake.IntBetween(0, days-1)),
		NumberOfPeople: party,
		Orders:         make([]models.Order, 0, party),
	}

	for o := 0; o < party; o++ {
		tags := models.DietaryTags{}
		seen := map[string]bool{}
		for n := fake.IntBetween(0, max(opts.MaxTags, 0)); n > 0; n-- {
			tag := fake.RandomStringElement(DietaryTagPool)
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
		reservation.Orders = append(reservation.Orders, models.Order{DietaryTags: tags})
	}
	return reservation
}
