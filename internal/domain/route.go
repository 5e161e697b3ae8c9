package domain

// Single maneuver of a driving route.
type Step struct {
	Instruction     string
	RoadName        string
	DistanceMiles   string
	DurationMinutes int
	ManeuverType    string
	Modifier        string
}

// Route is a road-following route as returned by a routing service.
// Distance and duration are in meters and seconds.
type Route struct {
	Line      []Coordinates
	DistanceM float64
	DurationS float64
	Steps     []Step
}

// Reasons a RouteResult holds a straight-line estimate instead of a road route.
const (
	FallbackNone         = ""
	FallbackNoRoute      = "no_route"
	FallbackUnavailable  = "unavailable"
	FallbackInvalidInput = "invalid_input"
)

// RouteResult is the best-effort driving route between two points.
// When IsFallback is set the distance is a straight-line estimate, Coordinates
// holds only the two endpoints and Steps is empty.
type RouteResult struct {
	Coordinates       []Coordinates
	DistanceM         float64
	DurationS         float64
	DistanceMiles     string
	DurationMinutes   int
	DurationFormatted string
	Steps             []Step
	IsFallback        bool
	FallbackReason    string
}

// Driving leg between two consecutive pinned stops of a day.
// Derived data; recomputed whenever the day's waypoints change.
type RouteSegment struct {
	From       string
	To         string
	DistanceM  float64
	DurationS  float64
	IsFallback bool
	Line       []Coordinates
}

// Aggregated driving route for one day.
type DayRoute struct {
	DayID     string
	DayNumber int
	Line      []Coordinates
	DistanceM float64
	DurationS float64
	Segments  []RouteSegment
}

// HasFallback reports whether any segment is a straight-line estimate.
func (r *DayRoute) HasFallback() bool {
	if r == nil {
		return false
	}
	for _, s := range r.Segments {
		if s.IsFallback {
			return true
		}
	}
	return false
}

// Routes for every day of a trip plus whole-trip totals.
// Days without at least two pinned stops have no entry in Days.
type TripRoutes struct {
	Days      map[string]*DayRoute
	DistanceM float64
	DurationS float64
}

// Place is a geocoding hit.
type Place struct {
	Query       string
	DisplayName string
	Coordinates Coordinates
}
