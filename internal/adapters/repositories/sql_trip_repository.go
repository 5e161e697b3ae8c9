package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
)

// SQL-backed implementation of the TripRepository port. The same queries serve
// the local SQLite store and the Postgres sync target.
type SQLTripRepository struct {
	DB      *sql.DB
	dialect Dialect
	name    string
}

func NewSqliteTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db, dialect: DialectSqlite, name: "sqlite trip repository"}
}

func NewPostgresTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db, dialect: DialectPostgres, name: "postgres trip repository"}
}

func (s *SQLTripRepository) check() error {
	if s.DB == nil {
		return fmt.Errorf("%s: DB is nil", s.name)
	}
	return nil
}

const selectActivityColumns = `
	SELECT
		id,
		name,
		location,
		category,
		lat,
		lon,
		duration_hours,
		custom
	FROM activities
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(r rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var lat, lon, duration sql.NullFloat64
	if err := r.Scan(&a.ID, &a.Name, &a.Location, &a.Category, &lat, &lon, &duration, &a.Custom); err != nil {
		return nil, err
	}
	if lat.Valid && lon.Valid {
		a.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	if duration.Valid {
		d := duration.Float64
		a.Duration = &d
	}
	return &a, nil
}

// Return the activity catalog in insertion order.
func (s *SQLTripRepository) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, selectActivityColumns+" ORDER BY position, id;")
	if err != nil {
		return nil, fmt.Errorf("list activities: query activities table: %w", err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0, 64)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("list activities: scan row: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: row iteration: %w", err)
	}

	return activities, nil
}

func (s *SQLTripRepository) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, s.dialect.rebind(selectActivityColumns+" WHERE id = ?;"), id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get activity %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get activity %q: %w", id, err)
	}
	return a, nil
}

// Insert or update an activity. New activities are appended to the catalog
// order; updates keep their position.
func (s *SQLTripRepository) SaveActivity(ctx context.Context, a *domain.Activity) error {
	if err := s.check(); err != nil {
		return err
	}
	if a == nil || a.ID == "" {
		return errors.New("save activity: id must be non-empty")
	}

	var lat, lon, duration sql.NullFloat64
	if a.Coordinates != nil {
		lat = sql.NullFloat64{Float64: a.Coordinates.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: a.Coordinates.Lon, Valid: true}
	}
	if a.Duration != nil {
		duration = sql.NullFloat64{Float64: *a.Duration, Valid: true}
	}

	upsertQuery := `
	INSERT INTO activities (id, name, location, category, lat, lon, duration_hours, custom, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM activities))
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		location = excluded.location,
		category = excluded.category,
		lat = excluded.lat,
		lon = excluded.lon,
		duration_hours = excluded.duration_hours,
		custom = excluded.custom;
	`
	_, err := s.DB.ExecContext(ctx, s.dialect.rebind(upsertQuery),
		a.ID, a.Name, a.Location, a.Category, lat, lon, duration, a.Custom)
	if err != nil {
		return fmt.Errorf("save activity %q: %w", a.ID, err)
	}
	return nil
}

// Return all days ordered by day number.
func (s *SQLTripRepository) ListDays(ctx context.Context) ([]*domain.Day, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, day_number, start_time, location
	FROM days
	ORDER BY day_number, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list days: query days table: %w", err)
	}

	days := make([]*domain.Day, 0, 16)
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.ID, &d.Number, &d.StartTime, &d.Location); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list days: scan row: %w", err)
		}
		days = append(days, &d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list days: row iteration: %w", err)
	}
	rows.Close()

	// SQLite runs on a single connection, so child rows are loaded only
	// after the parent cursor is closed.
	for _, d := range days {
		if err := s.loadDayChildren(ctx, d); err != nil {
			return nil, fmt.Errorf("list days: %w", err)
		}
	}

	return days, nil
}

func (s *SQLTripRepository) GetDay(ctx context.Context, id string) (*domain.Day, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var d domain.Day
	row := s.DB.QueryRowContext(ctx, s.dialect.rebind(`
	SELECT id, day_number, start_time, location
	FROM days
	WHERE id = ?;
	`), id)
	err := row.Scan(&d.ID, &d.Number, &d.StartTime, &d.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get day %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get day %q: %w", id, err)
	}

	if err := s.loadDayChildren(ctx, &d); err != nil {
		return nil, fmt.Errorf("get day %q: %w", id, err)
	}
	return &d, nil
}

func (s *SQLTripRepository) loadDayChildren(ctx context.Context, d *domain.Day) error {
	rows, err := s.DB.QueryContext(ctx, s.dialect.rebind(`
	SELECT activity_id
	FROM day_activities
	WHERE day_id = ?
	ORDER BY position;
	`), d.ID)
	if err != nil {
		return fmt.Errorf("query day activities: %w", err)
	}
	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan day activity: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("day activity iteration: %w", err)
	}
	rows.Close()
	d.Activities = ids

	rows, err = s.DB.QueryContext(ctx, s.dialect.rebind(`
	SELECT activity_id, start_time, duration_hours, buffer_minutes, travel_miles
	FROM schedule_entries
	WHERE day_id = ?;
	`), d.ID)
	if err != nil {
		return fmt.Errorf("query schedule entries: %w", err)
	}
	defer rows.Close()

	d.Schedule = make(map[string]domain.ScheduleEntry)
	for rows.Next() {
		var activityID string
		var e domain.ScheduleEntry
		var miles sql.NullFloat64
		if err := rows.Scan(&activityID, &e.StartTime, &e.Duration, &e.BufferMinutes, &miles); err != nil {
			return fmt.Errorf("scan schedule entry: %w", err)
		}
		if miles.Valid {
			m := miles.Float64
			e.TravelMiles = &m
		}
		d.Schedule[activityID] = e
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("schedule entry iteration: %w", err)
	}
	return nil
}

// Replace a day, its ordered activity list and its schedule in one transaction.
func (s *SQLTripRepository) SaveDay(ctx context.Context, d *domain.Day) error {
	if err := s.check(); err != nil {
		return err
	}
	if d == nil || d.ID == "" {
		return errors.New("save day: id must be non-empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save day %q: begin tx: %w", d.ID, err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertDayQuery := `
	INSERT INTO days (id, day_number, start_time, location)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		day_number = excluded.day_number,
		start_time = excluded.start_time,
		location = excluded.location;
	`
	if _, err := tx.ExecContext(ctx, s.dialect.rebind(upsertDayQuery), d.ID, d.Number, d.StartTime, d.Location); err != nil {
		return fmt.Errorf("save day %q: upsert day: %w", d.ID, err)
	}

	if _, err := tx.ExecContext(ctx, s.dialect.rebind(`DELETE FROM day_activities WHERE day_id = ?;`), d.ID); err != nil {
		return fmt.Errorf("save day %q: clear activities: %w", d.ID, err)
	}
	insertActivity := s.dialect.rebind(`INSERT INTO day_activities (day_id, position, activity_id) VALUES (?, ?, ?);`)
	for i, id := range d.Activities {
		if _, err := tx.ExecContext(ctx, insertActivity, d.ID, i, id); err != nil {
			return fmt.Errorf("save day %q: insert activity %q: %w", d.ID, id, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.dialect.rebind(`DELETE FROM schedule_entries WHERE day_id = ?;`), d.ID); err != nil {
		return fmt.Errorf("save day %q: clear schedule: %w", d.ID, err)
	}
	insertEntry := s.dialect.rebind(`
	INSERT INTO schedule_entries (day_id, activity_id, start_time, duration_hours, buffer_minutes, travel_miles)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	for activityID, e := range d.Schedule {
		var miles sql.NullFloat64
		if e.TravelMiles != nil {
			miles = sql.NullFloat64{Float64: *e.TravelMiles, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertEntry, d.ID, activityID, e.StartTime, e.Duration, e.BufferMinutes, miles); err != nil {
			return fmt.Errorf("save day %q: insert schedule entry %q: %w", d.ID, activityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save day %q: commit tx: %w", d.ID, err)
	}
	return nil
}
