package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

type stubItem struct {
	id        int64
	ownerID   int64
	available bool
}

func (s stubItem) ID() int64         { return s.id }
func (s stubItem) OwnerID() int64    { return s.ownerID }
func (s stubItem) IsAvailable() bool { return s.available }

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantMsg string
	}{
		{"valid", now.Add(time.Hour), now.Add(2 * time.Hour), ""},
		{"starts exactly now", now, now.Add(time.Hour), ""},
		{"start after end", now.Add(2 * time.Hour), now.Add(time.Hour), MsgStartAfterEnd},
		{"start equals end", now.Add(time.Hour), now.Add(time.Hour), MsgStartEqualsEnd},
		{"start in past", now.Add(-time.Minute), now.Add(time.Hour), MsgStartInPast},
		{"inverted and in past reports inversion first", now.Add(-time.Hour), now.Add(-2 * time.Hour), MsgStartAfterEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePeriod(tt.start, tt.end, now)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsBadRequest(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestNewBooking(t *testing.T) {
	item := stubItem{id: 5, ownerID: 1, available: true}

	bk, err := NewBooking(item, 2, now.Add(time.Hour), now.Add(2*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, bk.Status())
	assert.Equal(t, int64(5), bk.ItemID())
	assert.Equal(t, int64(2), bk.BookerID())
	assert.Equal(t, int64(1), bk.Version())
	assert.True(t, bk.CanTransition())
}

func TestNewBooking_OwnerCannotBookOwnItem(t *testing.T) {
	_, err := NewBooking(stubItem{id: 5, ownerID: 1, available: true}, 1, now.Add(time.Hour), now.Add(2*time.Hour), now)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "User with id: 1 is the owner of item with id: 5", err.Error())
}

func TestNewBooking_UnavailableItem(t *testing.T) {
	_, err := NewBooking(stubItem{id: 5, ownerID: 1, available: false}, 2, now.Add(time.Hour), now.Add(2*time.Hour), now)

	require.Error(t, err)
	assert.True(t, domain.IsBadRequest(err))
	assert.Equal(t, "item with id: 5 is not available for booking", err.Error())
}

func TestApply_TransitionsExactlyOnce(t *testing.T) {
	for _, approved := range []bool{true, false} {
		bk := ReconstructBooking(1, 5, 2, now.Add(time.Hour), now.Add(2*time.Hour), StatusWaiting, 1, now, now)

		require.NoError(t, bk.Apply(approved, now))
		want := StatusRejected
		if approved {
			want = StatusApproved
		}
		assert.Equal(t, want, bk.Status())
		assert.False(t, bk.CanTransition())

		for _, again := range []bool{true, false} {
			err := bk.Apply(again, now)
			require.Error(t, err)
			assert.True(t, domain.IsBadRequest(err))
			assert.Equal(t, MsgStatusChangeNotAllowed, err.Error())
			assert.Equal(t, want, bk.Status())
		}
	}
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusWaiting.CanTransitionTo(StatusApproved))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())

	_, err := ParseBookingStatus("CANCELED")
	assert.Error(t, err)
	status, err := ParseBookingStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)
}
