package natsbus

import (
	"encoding/json"
	"testing"

	"pet-welfare-dashboard/internal/mutation"
	"pet-welfare-dashboard/internal/platform/logger"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_IgnoresOwnEventsAndMalformedPayloads(t *testing.T) {
	b := &Bus{origin: "dash-1", log: logger.Nop()}

	var got []mutation.Event
	h := b.handler(func(ev mutation.Event) { got = append(got, ev) })

	own, err := json.Marshal(mutation.Event{Kind: mutation.KindCreate, AnimalID: 1, Origin: "dash-1"})
	require.NoError(t, err)
	other, err := json.Marshal(mutation.Event{Kind: mutation.KindDelete, AnimalID: 2, Origin: "dash-2"})
	require.NoError(t, err)

	h(&nats.Msg{Data: own})
	h(&nats.Msg{Data: []byte("not json")})
	h(&nats.Msg{Data: other})

	require.Len(t, got, 1)
	assert.Equal(t, mutation.KindDelete, got[0].Kind)
	assert.Equal(t, 2, got[0].AnimalID)
}
