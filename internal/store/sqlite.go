package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tablewise/signal-collector/internal/domain"
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema. Use ":memory:" for an ephemeral store in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS weather (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			time DATETIME NOT NULL,
			location TEXT NOT NULL,
			temperature REAL NOT NULL,
			feels_like REAL NOT NULL,
			humidity REAL NOT NULL,
			pressure REAL NOT NULL,
			weather_condition TEXT NOT NULL,
			weather_description TEXT NOT NULL,
			wind_speed REAL NOT NULL,
			clouds REAL NOT NULL,
			precipitation REAL NOT NULL DEFAULT 0,
			visibility REAL
		);

		CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			event_date TEXT NOT NULL,
			event_time TEXT,
			event_name TEXT NOT NULL,
			event_type TEXT NOT NULL,
			venue TEXT NOT NULL,
			location TEXT NOT NULL,
			distance_km REAL NOT NULL,
			impact_score REAL NOT NULL,
			expected_attendance INTEGER
		);

		CREATE TABLE IF NOT EXISTS calendar (
			date TEXT PRIMARY KEY,
			day_of_week INTEGER NOT NULL,
			is_weekend INTEGER NOT NULL,
			is_holiday INTEGER NOT NULL,
			holiday_name TEXT,
			month INTEGER NOT NULL,
			quarter INTEGER NOT NULL,
			year INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_weather_time ON weather(time);
		CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) InsertWeatherObservation(ctx context.Context, obs domain.WeatherObservation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weather (
			time, location, temperature, feels_like, humidity, pressure,
			weather_condition, weather_description, wind_speed, clouds,
			precipitation, visibility
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		obs.Time, obs.Location, obs.Temperature, obs.FeelsLike, obs.Humidity,
		obs.Pressure, obs.Condition, obs.Description, obs.WindSpeed,
		obs.CloudCover, obs.Precipitation, nullableFloat(obs.Visibility),
	)
	if err != nil {
		return fmt.Errorf("insert weather observation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertEventRecord(ctx context.Context, rec domain.EventRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (
			event_id, event_date, event_time, event_name, event_type,
			venue, location, distance_km, impact_score, expected_attendance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO UPDATE SET
			event_date = excluded.event_date,
			event_time = excluded.event_time,
			impact_score = excluded.impact_score,
			expected_attendance = excluded.expected_attendance`,
		rec.ID, rec.Date, nullableString(rec.Time), rec.Name, rec.Category,
		rec.Venue, rec.Location, rec.DistanceKm, rec.ImpactScore,
		nullableInt(rec.ExpectedAttendance),
	)
	if err != nil {
		return fmt.Errorf("upsert event %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertCalendarDay(ctx context.Context, day domain.CalendarDay) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar (
			date, day_of_week, is_weekend, is_holiday, holiday_name,
			month, quarter, year
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			is_holiday = excluded.is_holiday,
			holiday_name = excluded.holiday_name`,
		day.Date.Format("2006-01-02"), day.DayOfWeek, day.IsWeekend,
		day.IsHoliday, nullableString(day.HolidayName), day.Month,
		day.Quarter, day.Year,
	)
	if err != nil {
		return fmt.Errorf("upsert calendar day %s: %w", day.Date.Format("2006-01-02"), err)
	}
	return nil
}

func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
