package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	SectionFront  = "Front"
	SectionMiddle = "Middle"
	SectionBack   = "Back"
)

// SectionNames lists the three sections every event carries, in seating order.
var SectionNames = []string{SectionFront, SectionMiddle, SectionBack}

type SeatSection struct {
	Section   string          `json:"section"`
	Available int             `json:"available"`
	Price     decimal.Decimal `json:"price"`
}

type Event struct {
	ID          int64           `json:"id"`
	EventName   string          `json:"eventName"`
	ArtistName  string          `json:"artistName"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time"`
	Budget      decimal.Decimal `json:"budget"`
	Image       string          `json:"image,omitempty"`
	Location    string          `json:"location"`
	Status      string          `json:"status"`
	Seats       []SeatSection   `json:"seats"`
	TicketsSold int             `json:"ticketsSold"`
}

// Section returns the seat section with the given name, or nil when the
// event has no such section.
func (e *Event) Section(name string) *SeatSection {
	for i := range e.Seats {
		if e.Seats[i].Section == name {
			return &e.Seats[i]
		}
	}
	return nil
}

// ValidStatus reports whether s is one of the event status enum values.
func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

// ValidSection reports whether s names one of the three seat sections.
func ValidSection(s string) bool {
	return s == SectionFront || s == SectionMiddle || s == SectionBack
}
