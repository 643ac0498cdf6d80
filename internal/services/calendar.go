package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	geojson "github.com/paulmach/go.geojson"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
)

// Calendar database column names.
const (
	CalColName     = "Name"
	CalColStatus   = "Status"
	CalColAllDay   = "AllDay"
	CalColDate     = "Date"
	CalColCategory = "Category"
	CalColLocation = "Location"
	CalColPlace    = "Place"
	CalColURL      = "URL"
	CalColNotes    = "Notes"
)

// EventFromPage decodes a calendar page into an event. The second return is
// false for entries the feed skips: cancelled events, flights (they come
// from a dedicated feed already) and entries without a start date.
func EventFromPage(page notion.Page) (*models.CalendarEvent, bool) {
	bag := page.Properties

	status := bag.StatusValue(CalColStatus)
	category := bag.SelectValue(CalColCategory)
	date := bag.DateValueOf(CalColDate)

	if status == models.EventStatusCancelled || category == "Flights" || date == nil || date.Start == "" {
		return nil, false
	}

	allDay := bag.CheckboxValue(CalColAllDay)
	start, end, ok := eventDateRange(date, allDay)
	if !ok {
		return nil, false
	}

	place := bag.PlaceValueOf(CalColPlace)
	location := bag.TextValue(CalColLocation)
	if location == "" && place != nil {
		location = place.Name
		if place.Address != "" {
			if location != "" {
				location += ", "
			}
			location += place.Address
		}
	}

	var coords *models.Coordinates
	if place != nil {
		coords = &models.Coordinates{Latitude: place.Latitude, Longitude: place.Longitude}
	}

	title := bag.TitleValue(CalColName)
	if emoji, ok := models.CategoryEmoji[category]; ok {
		title = emoji + " " + title
	}
	if !models.IsConfirmedStatus(status) {
		title = "[Pending] " + title
	}

	return &models.CalendarEvent{
		ID:          page.ID,
		Title:       title,
		Category:    category,
		Status:      status,
		AllDay:      allDay,
		Start:       start,
		End:         end,
		Location:    location,
		Notes:       bag.TextValue(CalColNotes),
		URL:         bag.URLValue(CalColURL),
		Coordinates: coords,
	}, true
}

// eventDateRange applies the duration defaults: a timed event without an
// end runs one hour; an all-day event uses date-only values with an
// exclusive end one day past its last day.
func eventDateRange(date *notion.DateValue, allDay bool) (time.Time, time.Time, bool) {
	start, err := parseNotionTime(date.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	var end time.Time
	if date.End != "" {
		end, err = parseNotionTime(date.End)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	} else {
		end = start.Add(time.Hour)
	}

	if allDay {
		start = truncateToDate(start)
		endBase := start
		if date.End != "" {
			endBase = truncateToDate(end)
		}
		end = endBase.Add(24 * time.Hour)
	}

	return start, end, true
}

func parseNotionTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", value, err)
	}
	return t, nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildICS renders the events as an iCalendar feed.
func BuildICS(events []*models.CalendarEvent) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//notion-recipe-assistant//calendar//EN")

	for _, event := range events {
		entry := cal.AddEvent(event.ID)
		entry.SetSummary(event.Title)
		if event.AllDay {
			entry.SetAllDayStartAt(event.Start)
			entry.SetAllDayEndAt(event.End)
		} else {
			entry.SetStartAt(event.Start)
			entry.SetEndAt(event.End)
		}
		if event.Location != "" {
			entry.SetLocation(event.Location)
		}
		if event.Notes != "" {
			entry.SetDescription(event.Notes)
		}
		if event.URL != "" {
			entry.SetURL(event.URL)
		}
	}

	return cal.Serialize()
}

// GeoJSONConfig names the columns the GeoJSON export reads. Zero values
// fall back to the conventional column names.
type GeoJSONConfig struct {
	TitleProp    string
	StartProp    string
	EndProp      string
	LocationProp string
	CoordsProp   string
	URLProp      string
}

func (c *GeoJSONConfig) applyDefaults() {
	if c.StartProp == "" {
		c.StartProp = "Start"
	}
	if c.EndProp == "" {
		c.EndProp = "End"
	}
	if c.LocationProp == "" {
		c.LocationProp = "Location"
	}
	if c.CoordsProp == "" {
		c.CoordsProp = "LocationCoords"
	}
	if c.URLProp == "" {
		c.URLProp = "URL"
	}
}

// BuildGeoJSON renders the pages as a FeatureCollection of points. Pages
// without usable coordinates are skipped.
func BuildGeoJSON(pages []notion.Page, cfg GeoJSONConfig) *geojson.FeatureCollection {
	cfg.applyDefaults()
	collection := geojson.NewFeatureCollection()

	for _, page := range pages {
		bag := page.Properties

		coords := pageCoordinates(bag, cfg.CoordsProp)
		if coords == nil {
			continue
		}

		title := ""
		if cfg.TitleProp != "" {
			title = bag.TitleValue(cfg.TitleProp)
		}
		if title == "" {
			title = bag.FirstTitleValue()
		}
		if title == "" {
			title = "Untitled"
		}

		location := bag.TextValue(cfg.LocationProp)
		if location == "" {
			location = bag.TitleValue(cfg.LocationProp)
		}

		url := bag.URLValue(cfg.URLProp)
		if url == "" {
			url = page.URL
		}

		var start, end string
		if date := bag.DateValueOf(cfg.StartProp); date != nil {
			start = date.Start
			end = date.End
		}
		if endDate := bag.DateValueOf(cfg.EndProp); endDate != nil && endDate.Start != "" {
			end = endDate.Start
		}

		feature := geojson.NewPointFeature([]float64{coords.Longitude, coords.Latitude})
		feature.SetProperty("id", page.ID)
		feature.SetProperty("name", title)
		feature.SetProperty("location", location)
		feature.SetProperty("url", url)
		feature.SetProperty("start", start)
		feature.SetProperty("end", end)
		collection.AddFeature(feature)
	}

	return collection
}

// pageCoordinates resolves a page's point: a structural place property
// first, then a "lat,lon" string from a rich text or formula column.
func pageCoordinates(bag notion.PropertyBag, coordsProp string) *models.Coordinates {
	if place := bag.PlaceValueOf(coordsProp); place != nil {
		return &models.Coordinates{Latitude: place.Latitude, Longitude: place.Longitude}
	}
	if place := bag.PlaceValueOf(CalColPlace); place != nil {
		return &models.Coordinates{Latitude: place.Latitude, Longitude: place.Longitude}
	}

	raw := bag.TextValue(coordsProp)
	if raw == "" {
		raw = bag.FormulaString(coordsProp)
	}
	return ParseCoordinates(raw)
}

// ParseCoordinates parses a "lat,lon" string, nil when malformed.
func ParseCoordinates(raw string) *models.Coordinates {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &models.Coordinates{Latitude: lat, Longitude: lon}
}
