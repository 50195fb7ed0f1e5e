package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

func TestNewItem_Validation(t *testing.T) {
	_, err := NewItem(1, " ", "drill", true, nil)
	assert.True(t, domain.IsBadRequest(err))

	_, err = NewItem(1, "Drill", "", true, nil)
	assert.True(t, domain.IsBadRequest(err))

	_, err = NewItem(0, "Drill", "cordless", true, nil)
	assert.True(t, domain.IsBadRequest(err))

	requestID := int64(9)
	it, err := NewItem(1, "Drill", "cordless", true, &requestID)
	require.NoError(t, err)
	assert.True(t, it.IsOwnedBy(1))
	assert.False(t, it.IsOwnedBy(2))
	assert.Equal(t, &requestID, it.RequestID())
}

func TestItem_PatchIgnoresNilAndBlankFields(t *testing.T) {
	it := Reconstruct(1, 1, "Drill", "cordless", true, nil, 1, time.Now(), time.Now())

	blank := "  "
	unavailable := false
	it.Patch(&blank, nil, &unavailable)

	assert.Equal(t, "Drill", it.Name())
	assert.Equal(t, "cordless", it.Description())
	assert.False(t, it.IsAvailable())

	name := "Hammer drill"
	it.Patch(&name, nil, nil)
	assert.Equal(t, "Hammer drill", it.Name())
	assert.False(t, it.IsAvailable())
}

func TestNewComment_RequiresText(t *testing.T) {
	_, err := NewComment(1, 2, "", time.Now())
	assert.True(t, domain.IsBadRequest(err))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c, err := NewComment(1, 2, "great", at)
	require.NoError(t, err)
	assert.Equal(t, at, c.Created())
}
