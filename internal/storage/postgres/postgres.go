package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"courtBooker/internal/config"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"
	"courtBooker/internal/storage/postgres/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type Storage struct {
	DB *sqlx.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) RunMigrations() error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(s.DB.DB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(name, email, phone, passwordHash string) (models.User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone`

	var user models.User
	err := s.DB.QueryRowx(query, name, email, phone, passwordHash).StructScan(&user)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Storage) UserByEmail(email string) (models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash
		FROM users
		WHERE email = $1`

	var user models.User
	err := s.DB.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// CreateBooking inserts a booking with the given initial status. The partial
// unique index on confirmed slots makes the insert fail when a confirmed
// booking already occupies the same (date, time); that failure maps to
// storage.ErrSlotTaken and nothing is written.
func (s *Storage) CreateBooking(userID int64, date, gameTime, status string) (models.Booking, error) {
	query := `
		INSERT INTO schedules (user_id, game_date, game_time, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, to_char(game_date, 'YYYY-MM-DD') AS date, to_char(game_time, 'HH24:MI') AS time, status`

	var booking models.Booking
	err := s.DB.QueryRowx(query, userID, date, gameTime, status).StructScan(&booking)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Booking{}, storage.ErrSlotTaken
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// ConfirmBooking sets status=confirmed unconditionally. Slot occupancy is not
// re-checked here; see the availability invariant notes in the schema.
func (s *Storage) ConfirmBooking(id int64) (models.Booking, error) {
	query := `
		UPDATE schedules
		SET status = 'confirmed'
		WHERE id = $1
		RETURNING id, user_id, to_char(game_date, 'YYYY-MM-DD') AS date, to_char(game_time, 'HH24:MI') AS time, status`

	var booking models.Booking
	err := s.DB.QueryRowx(query, id).StructScan(&booking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to confirm booking: %w", err)
	}

	return booking, nil
}

// BookedSlots returns the occupied times per date, confirmed bookings only.
// Pending bookings never block a slot here.
func (s *Storage) BookedSlots() (map[string][]string, error) {
	query := `
		SELECT to_char(game_date, 'YYYY-MM-DD') AS date, to_char(game_time, 'HH24:MI') AS time
		FROM schedules
		WHERE status = 'confirmed'`

	var rows []struct {
		Date string `db:"date"`
		Time string `db:"time"`
	}

	if err := s.DB.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}

	booked := make(map[string][]string, len(rows))
	for _, row := range rows {
		booked[row.Date] = append(booked[row.Date], row.Time)
	}

	return booked, nil
}

func (s *Storage) UserBookings(userID int64) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, to_char(game_date, 'YYYY-MM-DD') AS date, to_char(game_time, 'HH24:MI') AS time, status
		FROM schedules
		WHERE user_id = $1
		ORDER BY game_date DESC, game_time DESC`

	var bookings []models.Booking
	if err := s.DB.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
