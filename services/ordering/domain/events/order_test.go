package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgevents "github.com/bookmountain/adelaide-uni-market-place/pkg/events"
)

var _ pkgevents.Event = OrderCreatedEvent{}

func TestOrderCreatedEvent_Payload(t *testing.T) {
	e := OrderCreatedEvent{
		EventID:    uuid.New(),
		Version:    Version,
		OrderID:    uuid.New(),
		ItemID:     uuid.New(),
		Total:      decimal.RequireFromString("45.00"),
		OccurredAt: time.Now().UTC(),
	}

	msg, err := pkgevents.NewMessage(e)
	require.NoError(t, err)
	assert.Equal(t, e.EventID.String(), msg.Metadata.Get(pkgevents.MetadataEventID))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &raw))
	assert.Equal(t, "45", raw["total"])
	assert.Equal(t, e.ItemID.String(), raw["item_id"])
}
