package models

// Diner represents a guest of the restaurant and their bookings
type Diner struct {
	ID           uint          `json:"-" gorm:"primary_key"`
	Name         string        `json:"name" gorm:"not null"`
	Reservations []Reservation `json:"reservations" gorm:"foreignkey:DinerID"`
}

// Reservation represents a booked visit for a party on a given date
type Reservation struct {
	ID             uint    `json:"-" gorm:"primary_key"`
	DinerID        uint    `json:"-" gorm:"index"`
	Date           Date    `json:"date" gorm:"type:varchar(10);index"`
	NumberOfPeople int     `json:"number_of_people"`
	Orders         []Order `json:"orders" gorm:"foreignkey:ReservationID"`
}
