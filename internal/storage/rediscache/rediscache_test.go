package rediscache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stagepass/internal/lib/logger/handlers/slogdiscard"
	"stagepass/internal/models"
	"stagepass/internal/storage/rediscache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	rediscache.EventStore

	event      *models.Event
	events     []models.Event
	eventCalls int
	allCalls   int
	released   int
}

func (s *stubStore) Event(ctx context.Context, id int64) (*models.Event, error) {
	s.eventCalls++
	return s.event, nil
}

func (s *stubStore) AllEvents(ctx context.Context) ([]models.Event, error) {
	s.allCalls++
	return s.events, nil
}

func (s *stubStore) ReleaseSeats(ctx context.Context, eventID int64, section string, qty int) error {
	s.released += qty
	return nil
}

func TestEvent_CacheMiss(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	ev := &models.Event{ID: 7, EventName: "Arijit Live"}
	inner := &stubStore{event: ev}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	rmock.ExpectGet("stagepass:events:7").RedisNil()
	rmock.ExpectSet("stagepass:events:7", data, time.Minute).SetVal("OK")

	store := rediscache.New(slogdiscard.NewDiscardLogger(), inner, rdb, time.Minute)

	got, err := store.Event(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, 1, inner.eventCalls)

	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestEvent_CacheHit(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	ev := &models.Event{ID: 7, EventName: "Arijit Live"}
	data, err := json.Marshal(ev)
	require.NoError(t, err)

	rmock.ExpectGet("stagepass:events:7").SetVal(string(data))

	inner := &stubStore{}
	store := rediscache.New(slogdiscard.NewDiscardLogger(), inner, rdb, time.Minute)

	got, err := store.Event(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Arijit Live", got.EventName)
	assert.Zero(t, inner.eventCalls)

	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestAllEvents_CacheMiss(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	events := []models.Event{{ID: 1}, {ID: 2}}
	inner := &stubStore{events: events}

	data, err := json.Marshal(events)
	require.NoError(t, err)

	rmock.ExpectGet("stagepass:events:all").RedisNil()
	rmock.ExpectSet("stagepass:events:all", data, time.Minute).SetVal("OK")

	store := rediscache.New(slogdiscard.NewDiscardLogger(), inner, rdb, time.Minute)

	got, err := store.AllEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, inner.allCalls)

	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestReleaseSeats_Invalidates(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()

	rmock.ExpectDel("stagepass:events:all", "stagepass:events:7").SetVal(2)

	inner := &stubStore{}
	store := rediscache.New(slogdiscard.NewDiscardLogger(), inner, rdb, time.Minute)

	require.NoError(t, store.ReleaseSeats(context.Background(), 7, models.SectionFront, 2))
	assert.Equal(t, 2, inner.released)

	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestNilClientPassesThrough(t *testing.T) {
	inner := &stubStore{event: &models.Event{ID: 7}}
	store := rediscache.New(slogdiscard.NewDiscardLogger(), inner, nil, time.Minute)

	_, err := store.Event(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.eventCalls)
}
