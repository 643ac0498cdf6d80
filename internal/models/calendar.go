package models

import "time"

// CalendarEvent is a read-only event derived from a calendar database page.
// It is never written back.
type CalendarEvent struct {
	ID          string
	Title       string
	Category    string
	Status      string
	AllDay      bool
	Start       time.Time
	End         time.Time
	Location    string
	Notes       string
	URL         string
	Coordinates *Coordinates
}

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Event statuses that count as confirmed; anything else renders with a
// "[Pending] " title prefix.
const (
	EventStatusScheduled = "Scheduled"
	EventStatusReserved  = "Reserved"
	EventStatusCancelled = "Cancelled"
)

// CategoryEmoji maps event categories to their title emoji.
var CategoryEmoji = map[string]string{
	"Amusement Parks":     "🎢",
	"Bakeries":            "🥐",
	"Concerts":            "🎵",
	"Entertainment":       "🎭",
	"Flights":             "✈️",
	"Hotels":              "🏨",
	"Markets":             "🛒",
	"Museums":             "🖼️",
	"Parks":               "🌳",
	"Places of Interest":  "📍",
	"Restaurants":         "🍽️",
	"Shopping":            "🛍️",
	"Tours":               "🗺️",
	"Transportation":      "🚆",
}

// IsConfirmedStatus reports whether the status needs no pending marker.
func IsConfirmedStatus(status string) bool {
	return status == EventStatusScheduled || status == EventStatusReserved
}
