package domain

import "math"

// CategoryCity marks a city pin. City markers frame a day on the map but are
// not stops on the driving route.
const CategoryCity = "city"

// DefaultActivityHours is used when an activity has no usable duration.
const DefaultActivityHours = 1.5

// Represents a single thing to do on the trip, either from the curated
// catalog or authored by the traveler.
// Coordinates and Duration are optional; nil means absent.
type Activity struct {
	ID          string
	Name        string
	Location    string
	Category    string
	Coordinates *Coordinates
	Duration    *float64
	Custom      bool
}

// DurationHours returns the activity duration, or ok=false when it is absent,
// non-finite or negative.
func (a *Activity) DurationHours() (float64, bool) {
	if a == nil || a.Duration == nil {
		return 0, false
	}
	d := *a.Duration
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, false
	}
	return d, true
}

// IsCity reports whether the activity is a city marker.
func (a *Activity) IsCity() bool {
	return a != nil && a.Category == CategoryCity
}

// Catalog indexes activities by id.
type Catalog struct {
	byID map[string]*Activity
}

func NewCatalog(activities []*Activity) *Catalog {
	c := &Catalog{byID: make(map[string]*Activity, len(activities))}
	for _, a := range activities {
		if a == nil || a.ID == "" {
			continue
		}
		c.byID[a.ID] = a
	}
	return c
}

// Resolve returns the activity with the given id, or nil.
func (c *Catalog) Resolve(id string) *Activity {
	if c == nil {
		return nil
	}
	return c.byID[id]
}
