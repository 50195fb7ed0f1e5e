package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	"github.com/shareit/service-shareit/internal/events"
	"github.com/shareit/service-shareit/internal/platform/domain"
)

func TestBookingService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	stranger := env.user(t, "stranger")
	it := env.item(t, owner.ID, "Drill", true)

	created, err := env.bookings.CreateBooking(ctx, booker.ID, CreateBookingRequest{
		ItemID: it.ID,
		Start:  env.now.Add(time.Hour),
		End:    env.now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)
	assert.Equal(t, ItemShortDTO{ID: it.ID, Name: "Drill"}, created.Item)
	assert.Equal(t, *booker, created.Booker)

	approved, err := env.bookings.UpdateBooking(ctx, created.ID, owner.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	for _, decision := range []bool{true, false} {
		_, err = env.bookings.UpdateBooking(ctx, created.ID, owner.ID, decision)
		require.Error(t, err)
		assert.True(t, domain.IsBadRequest(err))
		assert.Equal(t, bookingDomain.MsgStatusChangeNotAllowed, err.Error())
	}

	for _, viewer := range []int64{owner.ID, booker.ID} {
		got, err := env.bookings.GetBooking(ctx, created.ID, viewer)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", got.Status)
	}

	_, err = env.bookings.GetBooking(ctx, created.ID, stranger.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	assert.Equal(t, []string{events.BookingRequested, events.BookingApproved}, env.publisher.types())
}

func TestBookingService_Reject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	it := env.item(t, owner.ID, "Drill", true)

	created, err := env.bookings.CreateBooking(ctx, booker.ID, CreateBookingRequest{ItemID: it.ID, Start: env.now.Add(time.Hour), End: env.now.Add(2 * time.Hour)})
	require.NoError(t, err)

	rejected, err := env.bookings.UpdateBooking(ctx, created.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", rejected.Status)

	_, err = env.bookings.UpdateBooking(ctx, created.ID, owner.ID, true)
	assert.True(t, domain.IsBadRequest(err))

	require.Len(t, env.publisher.events, 2)
	var decided events.BookingDecidedEvent
	require.NoError(t, env.publisher.events[1].ParseData(&decided))
	assert.Equal(t, events.BookingRejected, env.publisher.events[1].Type)
	assert.Equal(t, created.ID, decided.BookingID)
	assert.Equal(t, owner.ID, decided.OwnerID)
	assert.Equal(t, "REJECTED", decided.Status)
}

func TestBookingService_CreatePreconditionsInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	available := env.item(t, owner.ID, "Drill", true)
	unavailable := env.item(t, owner.ID, "Saw", false)

	h := time.Hour
	tests := []struct {
		name     string
		bookerID int64
		itemID   int64
		start    time.Duration
		end      time.Duration
		check    func(error) bool
		wantMsg  string
	}{
		{"unknown booker wins over bad dates", 999, 999, 2 * h, h, domain.IsNotFound, "User with id: 999 not found"},
		{"start after end", booker.ID, available.ID, 2 * h, h, domain.IsBadRequest, bookingDomain.MsgStartAfterEnd},
		{"start equals end", booker.ID, available.ID, h, h, domain.IsBadRequest, bookingDomain.MsgStartEqualsEnd},
		{"start in past", booker.ID, available.ID, -h, h, domain.IsBadRequest, bookingDomain.MsgStartInPast},
		{"bad dates win over unknown item", booker.ID, 999, -h, h, domain.IsBadRequest, bookingDomain.MsgStartInPast},
		{"unknown item", booker.ID, 999, h, 2 * h, domain.IsNotFound, "Item with id: 999 not found"},
		{"owner books own item", owner.ID, available.ID, h, 2 * h, domain.IsNotFound, "User with id: 1 is the owner of item with id: 1"},
		{"owner check wins over availability", owner.ID, unavailable.ID, h, 2 * h, domain.IsNotFound, "User with id: 1 is the owner of item with id: 2"},
		{"unavailable item", booker.ID, unavailable.ID, h, 2 * h, domain.IsBadRequest, "item with id: 2 is not available for booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bookings.CreateBooking(ctx, tt.bookerID, CreateBookingRequest{
				ItemID: tt.itemID,
				Start:  env.now.Add(tt.start),
				End:    env.now.Add(tt.end),
			})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	assert.Empty(t, env.publisher.types(), "failed creations publish nothing")
}

func TestBookingService_UpdatePreconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	it := env.item(t, owner.ID, "Drill", true)
	bookingID := env.seedBooking(t, it.ID, booker.ID, time.Hour, 2*time.Hour, bookingDomain.StatusWaiting)

	_, err := env.bookings.UpdateBooking(ctx, 999, 998, true)
	assert.EqualError(t, err, "Booking with id: 999 not found")

	_, err = env.bookings.UpdateBooking(ctx, bookingID, 998, true)
	assert.EqualError(t, err, "User with id: 998 not found")

	_, err = env.bookings.UpdateBooking(ctx, bookingID, booker.ID, true)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "is not the owner of item")

	got, err := env.bookings.GetBooking(ctx, bookingID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "WAITING", got.Status)
}

func TestBookingService_GetPreconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	it := env.item(t, owner.ID, "Drill", true)
	bookingID := env.seedBooking(t, it.ID, booker.ID, time.Hour, 2*time.Hour, bookingDomain.StatusWaiting)

	_, err := env.bookings.GetBooking(ctx, 999, 998)
	assert.EqualError(t, err, "Booking with id: 999 not found")

	_, err = env.bookings.GetBooking(ctx, bookingID, 998)
	assert.EqualError(t, err, "User with id: 998 not found")
}

func TestBookingService_ListByState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	drill := env.item(t, owner.ID, "Drill", true)
	saw := env.item(t, owner.ID, "Saw", true)

	h := time.Hour
	past := env.seedBooking(t, drill.ID, booker.ID, -4*h, -3*h, bookingDomain.StatusApproved)
	rejected := env.seedBooking(t, saw.ID, booker.ID, -2*h, -h, bookingDomain.StatusRejected)
	current := env.seedBooking(t, drill.ID, booker.ID, -h, h, bookingDomain.StatusApproved)
	startsNow := env.seedBooking(t, saw.ID, booker.ID, 0, 2*h, bookingDomain.StatusApproved)
	future := env.seedBooking(t, drill.ID, booker.ID, 3*h, 4*h, bookingDomain.StatusWaiting)

	tests := []struct {
		state string
		want  []int64
	}{
		{"ALL", []int64{future, startsNow, current, rejected, past}},
		{"CURRENT", []int64{startsNow, current}},
		{"PAST", []int64{rejected, past}},
		{"FUTURE", []int64{future}},
		{"WAITING", []int64{future}},
		{"REJECTED", []int64{rejected}},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			for name, list := range map[string]func() ([]BookingDTO, error){
				"booker": func() ([]BookingDTO, error) { return env.bookings.ListBookerBookings(ctx, booker.ID, tt.state, 0, 10) },
				"owner":  func() ([]BookingDTO, error) { return env.bookings.ListOwnerBookings(ctx, owner.ID, tt.state, 0, 10) },
			} {
				got, err := list()
				require.NoError(t, err, name)
				gotIDs := make([]int64, len(got))
				for i, b := range got {
					gotIDs[i] = b.ID
					assert.Equal(t, booker.ID, b.Booker.ID)
				}
				assert.Equal(t, tt.want, gotIDs, name)
			}
		})
	}

	none, err := env.bookings.ListOwnerBookings(ctx, booker.ID, "ALL", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, none, "booker owns no items")

	paged, err := env.bookings.ListBookerBookings(ctx, booker.ID, "ALL", 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, current, paged[0].ID)
	assert.Equal(t, rejected, paged[1].ID)
}

func TestBookingService_ListRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	booker := env.user(t, "booker")

	_, err := env.bookings.ListBookerBookings(ctx, booker.ID, "UNKNOWNSTATE", 0, 10)
	require.Error(t, err)
	assert.True(t, domain.IsBadRequest(err))
	assert.Equal(t, "Unknown state: UNKNOWNSTATE", err.Error())

	_, err = env.bookings.ListOwnerBookings(ctx, booker.ID, "current", 0, 10)
	assert.EqualError(t, err, "Unknown state: current")

	_, err = env.bookings.ListBookerBookings(ctx, 999, "UNKNOWNSTATE", 0, 10)
	assert.EqualError(t, err, "User with id: 999 not found")

	_, err = env.bookings.ListBookerBookings(ctx, booker.ID, "ALL", -1, 10)
	assert.True(t, domain.IsBadRequest(err))

	_, err = env.bookings.ListOwnerBookings(ctx, booker.ID, "ALL", 0, 0)
	assert.True(t, domain.IsBadRequest(err))
}

func TestBookingService_PublishFailureDoesNotFailUseCase(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.fail = true
	ctx := context.Background()
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	it := env.item(t, owner.ID, "Drill", true)

	created, err := env.bookings.CreateBooking(ctx, booker.ID, CreateBookingRequest{ItemID: it.ID, Start: env.now.Add(time.Hour), End: env.now.Add(2 * time.Hour)})
	require.NoError(t, err)

	_, err = env.bookings.UpdateBooking(ctx, created.ID, owner.ID, true)
	require.NoError(t, err)
}

func TestBookingService_Stats(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner")
	booker := env.user(t, "booker")
	it := env.item(t, owner.ID, "Drill", true)
	env.seedBooking(t, it.ID, booker.ID, time.Hour, 2*time.Hour, bookingDomain.StatusWaiting)
	env.seedBooking(t, it.ID, booker.ID, 3*time.Hour, 4*time.Hour, bookingDomain.StatusApproved)

	stats, err := env.bookings.GetBookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["WAITING"])
}

func TestBookingService_ListWithDanglingItemIsInternal(t *testing.T) {
	env := newTestEnv(t)
	booker := env.user(t, "booker")
	env.seedBooking(t, 999, booker.ID, time.Hour, 2*time.Hour, bookingDomain.StatusWaiting)

	_, err := env.bookings.ListBookerBookings(context.Background(), booker.ID, "ALL", 0, 10)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "references missing item 999")
}
