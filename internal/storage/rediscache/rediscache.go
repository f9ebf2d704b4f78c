// Package rediscache is a read-through cache over the event store. Event
// listings are the hottest reads and change only on admin writes or
// inventory moves, so every mutating call invalidates. With no redis
// client configured the decorator degrades to a plain pass-through.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyAllEvents = "stagepass:events:all"
	keyEvent     = "stagepass:events:%d"
)

type EventStore interface {
	Event(ctx context.Context, id int64) (*models.Event, error)
	AllEvents(ctx context.Context) ([]models.Event, error)
	EventsByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error)
	CreateEvent(ctx context.Context, ev *models.Event) (int64, error)
	UpdateEvent(ctx context.Context, ev *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	UpdateEventStatus(ctx context.Context, id int64, status string) error
	ReserveSeats(ctx context.Context, eventID int64, section string, qty int) error
	ReleaseSeats(ctx context.Context, eventID int64, section string, qty int) error
}

type Store struct {
	log   *slog.Logger
	inner EventStore
	rdb   *redis.Client
	ttl   time.Duration
}

// New wraps inner with a cache backed by rdb. A nil rdb disables caching
// entirely; callers don't need to care which mode they got.
func New(log *slog.Logger, inner EventStore, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		log:   log,
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

func (s *Store) Event(ctx context.Context, id int64) (*models.Event, error) {
	if s.rdb == nil {
		return s.inner.Event(ctx, id)
	}

	key := fmt.Sprintf(keyEvent, id)

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var ev models.Event
		if err = json.Unmarshal(data, &ev); err == nil {
			return &ev, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn("event cache read failed", sl.Err(err))
	}

	ev, err := s.inner.Event(ctx, id)
	if err != nil {
		return nil, err
	}

	s.put(ctx, key, ev)
	return ev, nil
}

func (s *Store) AllEvents(ctx context.Context) ([]models.Event, error) {
	if s.rdb == nil {
		return s.inner.AllEvents(ctx)
	}

	if data, err := s.rdb.Get(ctx, keyAllEvents).Bytes(); err == nil {
		var events []models.Event
		if err = json.Unmarshal(data, &events); err == nil {
			return events, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn("events cache read failed", sl.Err(err))
	}

	events, err := s.inner.AllEvents(ctx)
	if err != nil {
		return nil, err
	}

	s.put(ctx, keyAllEvents, events)
	return events, nil
}

// EventsByDateRange is query-shaped and cold, so it always goes to the
// store.
func (s *Store) EventsByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	return s.inner.EventsByDateRange(ctx, from, to)
}

func (s *Store) CreateEvent(ctx context.Context, ev *models.Event) (int64, error) {
	id, err := s.inner.CreateEvent(ctx, ev)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, id)
	return id, nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev *models.Event) error {
	if err := s.inner.UpdateEvent(ctx, ev); err != nil {
		return err
	}
	s.invalidate(ctx, ev.ID)
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.inner.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Store) UpdateEventStatus(ctx context.Context, id int64, status string) error {
	if err := s.inner.UpdateEventStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Store) ReserveSeats(ctx context.Context, eventID int64, section string, qty int) error {
	if err := s.inner.ReserveSeats(ctx, eventID, section, qty); err != nil {
		return err
	}
	s.invalidate(ctx, eventID)
	return nil
}

func (s *Store) ReleaseSeats(ctx context.Context, eventID int64, section string, qty int) error {
	if err := s.inner.ReleaseSeats(ctx, eventID, section, qty); err != nil {
		return err
	}
	s.invalidate(ctx, eventID)
	return nil
}

func (s *Store) put(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err = s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Warn("cache write failed", sl.Err(err))
	}
}

func (s *Store) invalidate(ctx context.Context, id int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, keyAllEvents, fmt.Sprintf(keyEvent, id)).Err(); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
}
