package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	"github.com/shareit/service-shareit/internal/platform/kafka"
	"github.com/shareit/service-shareit/internal/platform/testutil"
	"github.com/shareit/service-shareit/internal/repository"
)

const testTopic = "test.booking.events"

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	fail   bool
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if topic == testTopic {
		p.events = append(p.events, event)
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	now       time.Time
	publisher *recordingPublisher

	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService

	bookingRepo *repository.GormBookingRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenSQLite(t, repository.AutoMigrate)
	log := zap.NewNop()

	tx := repository.NewTransactor(db)
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	env := &testEnv{
		now:         time.Now().UTC().Truncate(time.Second),
		publisher:   &recordingPublisher{},
		bookingRepo: bookingRepo,
	}
	clock := func() time.Time { return env.now }

	env.users = NewUserService(userRepo, log)
	env.items = NewItemService(tx, itemRepo, commentRepo, userRepo, requestRepo, bookingRepo, log)
	env.items.now = clock
	env.bookings = NewBookingService(tx, bookingRepo, itemRepo, userRepo, env.publisher, testTopic, log)
	env.bookings.now = clock
	env.requests = NewRequestService(tx, requestRepo, itemRepo, userRepo, log)
	env.requests.now = clock
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) user(t *testing.T, name string) *UserDTO {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), CreateUserRequest{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) item(t *testing.T, ownerID int64, name string, available bool) *ItemDTO {
	t.Helper()
	it, err := e.items.CreateItem(context.Background(), ownerID, CreateItemRequest{
		Name:        name,
		Description: name + " for rent",
		Available:   &available,
	})
	require.NoError(t, err)
	return it
}

// seedBooking stores a booking directly, bypassing the creation rules, so past ranges can exist.
func (e *testEnv) seedBooking(t *testing.T, itemID, bookerID int64, start, end time.Duration, status bookingDomain.BookingStatus) int64 {
	t.Helper()
	bk := bookingDomain.ReconstructBooking(0, itemID, bookerID, e.now.Add(start), e.now.Add(end), status, 1, e.now, e.now)
	saved, err := e.bookingRepo.Save(context.Background(), bk)
	require.NoError(t, err)
	return saved.ID()
}
