package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax for the SQL trip store.
type Dialect int

const (
	DialectSqlite Dialect = iota
	DialectPostgres
)

// rebind rewrites ? placeholders to $n for Postgres.
func (d Dialect) rebind(q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the trip schema. The DDL is shared by SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createActivitiesQuery := `
	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		duration_hours DOUBLE PRECISION,
		custom BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL
	);
	`

	createDaysQuery := `
	CREATE TABLE IF NOT EXISTS days (
		id TEXT PRIMARY KEY,
		day_number INTEGER NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT ''
	);
	`

	createDayActivitiesQuery := `
	CREATE TABLE IF NOT EXISTS day_activities (
		day_id TEXT NOT NULL REFERENCES days(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		activity_id TEXT NOT NULL REFERENCES activities(id),
		PRIMARY KEY (day_id, position)
	);
	`

	createScheduleEntriesQuery := `
	CREATE TABLE IF NOT EXISTS schedule_entries (
		day_id TEXT NOT NULL REFERENCES days(id) ON DELETE CASCADE,
		activity_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		buffer_minutes INTEGER NOT NULL,
		travel_miles DOUBLE PRECISION,
		PRIMARY KEY (day_id, activity_id)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_day_activities_activity
	ON day_activities(activity_id);
	`

	statements := []string{
		createActivitiesQuery,
		createDaysQuery,
		createDayActivitiesQuery,
		createScheduleEntriesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ActivitySeed struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Coordinates []float64 `json:"coordinates"`
	Duration    *float64  `json:"duration"`
}

type DaySeed struct {
	ID         string   `json:"id"`
	Number     int      `json:"number"`
	StartTime  string   `json:"start_time"`
	Location   string   `json:"location"`
	Activities []string `json:"activities"`
}

type TripSeed struct {
	Activities []ActivitySeed `json:"activities"`
	Days       []DaySeed      `json:"days"`
}

// Populate a trip store with the catalog and days from a JSON file.
// Existing rows with the same ids are replaced.
func SeedFromJSON(ctx context.Context, repo ports.TripRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trip: read %q: %w", jsonPath, err)
	}

	var data TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trip: parse json: %w", err)
	}

	for i, item := range data.Activities {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed trip: activity at index %d: id cannot be empty", i+1)
		}

		a := &domain.Activity{
			ID:       id,
			Name:     strings.TrimSpace(item.Name),
			Location: strings.TrimSpace(item.Location),
			Category: strings.TrimSpace(item.Category),
			Duration: item.Duration,
		}
		switch len(item.Coordinates) {
		case 0:
		case 2:
			a.Coordinates = &domain.Coordinates{Lat: item.Coordinates[0], Lon: item.Coordinates[1]}
		default:
			return fmt.Errorf("seed trip: activity %q: coordinates must be [lat, lon]", id)
		}

		if err := repo.SaveActivity(ctx, a); err != nil {
			return fmt.Errorf("seed trip: save activity %q: %w", id, err)
		}
	}

	for i, item := range data.Days {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed trip: day at index %d: id cannot be empty", i+1)
		}
		number := item.Number
		if number <= 0 {
			number = i + 1
		}

		d := &domain.Day{
			ID:         id,
			Number:     number,
			Activities: item.Activities,
			StartTime:  strings.TrimSpace(item.StartTime),
			Location:   strings.TrimSpace(item.Location),
			Schedule:   map[string]domain.ScheduleEntry{},
		}
		if err := repo.SaveDay(ctx, d); err != nil {
			return fmt.Errorf("seed trip: save day %q: %w", id, err)
		}
	}

	return nil
}
