package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsIDAndTime(t *testing.T) {
	a := New(UnitDeleted, DeletedUnit{ID: 3})
	b := New(UnitDeleted, DeletedUnit{ID: 3})

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, UnitDeleted, a.Kind)
	assert.WithinDuration(t, time.Now(), a.OccurredAt, time.Second)
	assert.Equal(t, DeletedUnit{ID: 3}, a.Payload)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), New(PeriodChanged, nil)))
}
