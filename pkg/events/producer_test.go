package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_JSONShape(t *testing.T) {
	t.Parallel()

	ev := Event{
		Type:       "review_recorded",
		EntityID:   "p-1",
		UserID:     "u-1",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Data:       map[string]any{"rating": 4},
	}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "review_recorded", m["type"])
	assert.Equal(t, "p-1", m["entity_id"])
	assert.Equal(t, "u-1", m["user_id"])
	assert.EqualValues(t, 4, m["data"].(map[string]any)["rating"])
}

func TestProducer_UnmarshalableEvent(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"127.0.0.1:1"}, "test.")
	t.Cleanup(func() { _ = p.Close() })

	err := p.PublishEvent(context.Background(), TopicCarts, "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}

func TestRecorderAndNoop(t *testing.T) {
	t.Parallel()

	var r Recorder
	require.NoError(t, r.PublishEvent(context.Background(), TopicOrders, "o-1", Event{Type: "order_created"}))
	require.Len(t, r.Events, 1)
	assert.Equal(t, TopicOrders, r.Events[0].Topic)

	require.NoError(t, Noop{}.PublishEvent(context.Background(), TopicOrders, "o-1", nil))
}
