package emitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	eventbus "github.com/weisyn/contributor/internal/core/infrastructure/event"
	"github.com/weisyn/contributor/pkg/constants/events"
	"github.com/weisyn/contributor/pkg/types"
)

func TestEmitter_PublishAssignsSequence(t *testing.T) {
	bus := eventbus.New(eventconfig.New(nil))
	e := New(bus, &testutil.MockLogger{}, 2)

	var received []*types.OutboundMessage
	require.NoError(t, bus.Subscribe(events.EventTypeOutboundMessage, func(ev *types.ContributorEvent) {
		received = append(received, ev.GetData().(*types.OutboundMessage))
	}))

	ctx := context.Background()
	for i := byte(1); i <= 3; i++ {
		seq, err := e.Publish(ctx, &types.OutboundMessage{
			SaleID:    testutil.SaleID(i),
			PayloadID: types.PayloadContributionsAttested,
			Payload:   []byte{i},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(i), seq)
	}

	require.Len(t, received, 3)
	assert.Equal(t, uint64(3), received[2].Sequence)
	assert.Equal(t, testutil.SaleID(3), received[2].SaleID)

	// 只保留最近两条
	recent := e.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(2), recent[0].Sequence)
}

func TestEmitter_CancelledContext(t *testing.T) {
	e := New(nil, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Publish(ctx, &types.OutboundMessage{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.Recent())
}
