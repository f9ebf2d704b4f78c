package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stagepass/internal/config"
	"stagepass/internal/models"
	"stagepass/internal/storage"

	"github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
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

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}
	if err = s.bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return s, nil
}

// bootstrap creates the schema on first start. The CHECK on available and
// the UNIQUE constraint on payment_intent_id back the two invariants the
// rest of the system relies on: no oversell, no duplicate booking per
// payment reference.
func (s *Storage) bootstrap() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			event_name TEXT NOT NULL,
			artist_name TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			time TEXT NOT NULL,
			budget NUMERIC(12,2) NOT NULL DEFAULT 0,
			image TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Scheduled',
			tickets_sold INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS seat_sections (
			event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			section TEXT NOT NULL,
			available INTEGER NOT NULL CHECK (available >= 0),
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			PRIMARY KEY (event_id, section)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			event_id BIGINT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_email TEXT NOT NULL,
			section TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			total_price NUMERIC(12,2) NOT NULL,
			currency TEXT NOT NULL DEFAULT 'inr',
			payment_intent_id TEXT NOT NULL UNIQUE,
			payment_status TEXT NOT NULL DEFAULT 'succeeded',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings (customer_email)`,
	}

	for _, q := range stmts {
		if _, err := s.DB.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

const sectionOrder = `CASE section WHEN 'Front' THEN 1 WHEN 'Middle' THEN 2 ELSE 3 END`

func (s *Storage) CreateEvent(ctx context.Context, ev *models.Event) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (event_name, artist_name, date, time, budget, image, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	status := ev.Status
	if status == "" {
		status = models.StatusScheduled
	}

	var id int64
	err = tx.QueryRowContext(ctx, query,
		ev.EventName, ev.ArtistName, ev.Date, ev.Time, ev.Budget, ev.Image, ev.Location, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	seatQuery := `
		INSERT INTO seat_sections (event_id, section, available, price)
		VALUES ($1, $2, $3, $4)`

	for _, seat := range ev.Seats {
		if _, err = tx.ExecContext(ctx, seatQuery, id, seat.Section, seat.Available, seat.Price); err != nil {
			return 0, fmt.Errorf("failed to create seat section: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, ev *models.Event) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE events
		SET event_name = $2, artist_name = $3, date = $4, time = $5, budget = $6, image = $7, location = $8
		WHERE id = $1`

	res, err := tx.ExecContext(ctx, query,
		ev.ID, ev.EventName, ev.ArtistName, ev.Date, ev.Time, ev.Budget, ev.Image, ev.Location,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrEventNotFound
	}

	seatQuery := `
		INSERT INTO seat_sections (event_id, section, available, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, section) DO UPDATE SET available = $3, price = $4`

	for _, seat := range ev.Seats {
		if _, err = tx.ExecContext(ctx, seatQuery, ev.ID, seat.Section, seat.Available, seat.Price); err != nil {
			return fmt.Errorf("failed to update seat section: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrEventNotFound
	}
	return nil
}

func (s *Storage) UpdateEventStatus(ctx context.Context, id int64, status string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE events SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrEventNotFound
	}
	return nil
}

func (s *Storage) Event(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, event_name, artist_name, date, time, budget, image, location, status, tickets_sold
		FROM events
		WHERE id = $1`

	var ev models.Event
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&ev.ID,
		&ev.EventName,
		&ev.ArtistName,
		&ev.Date,
		&ev.Time,
		&ev.Budget,
		&ev.Image,
		&ev.Location,
		&ev.Status,
		&ev.TicketsSold,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if ev.Seats, err = s.eventSeats(ctx, id); err != nil {
		return nil, err
	}

	return &ev, nil
}

func (s *Storage) eventSeats(ctx context.Context, eventID int64) ([]models.SeatSection, error) {
	query := `
		SELECT section, available, price
		FROM seat_sections
		WHERE event_id = $1
		ORDER BY ` + sectionOrder

	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seat sections: %w", err)
	}
	defer rows.Close()

	var seats []models.SeatSection
	for rows.Next() {
		var seat models.SeatSection
		if err = rows.Scan(&seat.Section, &seat.Available, &seat.Price); err != nil {
			return nil, fmt.Errorf("failed to scan seat section: %w", err)
		}
		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seat sections: %w", err)
	}

	return seats, nil
}

func (s *Storage) AllEvents(ctx context.Context) ([]models.Event, error) {
	return s.listEvents(ctx, `
		SELECT id, event_name, artist_name, date, time, budget, image, location, status, tickets_sold
		FROM events
		ORDER BY created_at DESC`)
}

func (s *Storage) EventsByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	return s.listEvents(ctx, `
		SELECT id, event_name, artist_name, date, time, budget, image, location, status, tickets_sold
		FROM events
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`, from, to)
}

func (s *Storage) listEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		err = rows.Scan(
			&ev.ID,
			&ev.EventName,
			&ev.ArtistName,
			&ev.Date,
			&ev.Time,
			&ev.Budget,
			&ev.Image,
			&ev.Location,
			&ev.Status,
			&ev.TicketsSold,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	for i := range events {
		if events[i].Seats, err = s.eventSeats(ctx, events[i].ID); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// ReserveSeats atomically takes qty seats from a section: the decrement and
// the availability check are a single conditional UPDATE, so two concurrent
// confirmations can never both pass the check and oversell.
func (s *Storage) ReserveSeats(ctx context.Context, eventID int64, section string, qty int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE seat_sections
		SET available = available - $3
		WHERE event_id = $1 AND section = $2 AND available >= $3`,
		eventID, section, qty,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM seat_sections WHERE event_id = $1 AND section = $2)`,
			eventID, section,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check seat section: %w", err)
		}
		if !exists {
			return storage.ErrSectionNotFound
		}
		return storage.ErrInsufficientSeats
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE events SET tickets_sold = tickets_sold + $2 WHERE id = $1`,
		eventID, qty,
	); err != nil {
		return fmt.Errorf("failed to update tickets sold: %w", err)
	}

	return tx.Commit()
}

// ReleaseSeats returns qty seats to a section after a cancellation.
// A missing section is tolerated (the event layout may have changed);
// tickets_sold is floored at zero.
func (s *Storage) ReleaseSeats(ctx context.Context, eventID int64, section string, qty int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		UPDATE seat_sections
		SET available = available + $3
		WHERE event_id = $1 AND section = $2`,
		eventID, section, qty,
	); err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE events SET tickets_sold = GREATEST(tickets_sold - $2, 0) WHERE id = $1`,
		eventID, qty,
	)
	if err != nil {
		return fmt.Errorf("failed to update tickets sold: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrEventNotFound
	}

	return tx.Commit()
}

func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (event_id, user_id, customer_name, customer_email, section, quantity, total_price, currency, payment_intent_id, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	created := *b
	err := s.DB.QueryRowContext(ctx, query,
		b.EventID, b.UserID, b.CustomerName, b.CustomerEmail, b.Section, b.Quantity,
		b.TotalPrice, b.Currency, b.PaymentIntentID, b.PaymentStatus,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, storage.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &created, nil
}

const bookingColumns = `id, event_id, user_id, customer_name, customer_email, section, quantity, total_price, currency, payment_intent_id, payment_status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.EventID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.Section,
		&b.Quantity,
		&b.TotalPrice,
		&b.Currency,
		&b.PaymentIntentID,
		&b.PaymentStatus,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Storage) Booking(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := scanBooking(s.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (s *Storage) BookingByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Booking, error) {
	b, err := scanBooking(s.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE payment_intent_id = $1`, paymentIntentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by payment intent: %w", err)
	}
	return b, nil
}

func (s *Storage) SetBookingStatus(ctx context.Context, id int64, status string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrBookingNotFound
	}
	return nil
}

const bookingWithEventQuery = `
	SELECT b.id, b.event_id, b.user_id, b.customer_name, b.customer_email, b.section, b.quantity,
	       b.total_price, b.currency, b.payment_intent_id, b.payment_status, b.created_at,
	       e.event_name, e.artist_name, e.date, e.time, e.location, e.image
	FROM bookings b
	LEFT JOIN events e ON e.id = b.event_id`

func (s *Storage) listBookings(ctx context.Context, where string, args ...any) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, bookingWithEventQuery+where+` ORDER BY b.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		var ev models.EventSummary
		var eventName, artistName, evTime, location, image sql.NullString
		var date sql.NullTime
		err = rows.Scan(
			&b.ID, &b.EventID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.Section, &b.Quantity,
			&b.TotalPrice, &b.Currency, &b.PaymentIntentID, &b.PaymentStatus, &b.CreatedAt,
			&eventName, &artistName, &date, &evTime, &location, &image,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if eventName.Valid {
			ev.EventName = eventName.String
			ev.ArtistName = artistName.String
			ev.Date = date.Time
			ev.Time = evTime.String
			ev.Location = location.String
			ev.Image = image.String
			b.Event = &ev
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// BookingsForUser matches bookings either by the user id recorded at
// confirmation time or by the customer email, so guests who later sign in
// still see their purchases.
func (s *Storage) BookingsForUser(ctx context.Context, userID, email string) ([]models.Booking, error) {
	return s.listBookings(ctx,
		` WHERE (b.user_id <> '' AND b.user_id = $1) OR (b.customer_email <> '' AND b.customer_email = $2)`,
		userID, email)
}

func (s *Storage) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.listBookings(ctx, ``)
}
