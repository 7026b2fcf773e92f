package migration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhoffer/darwinium/internal/core"
)

func TestChannelRing_SendReceive(t *testing.T) {
	ring := NewChannelRing(3)
	msg := core.MigrationMessage{
		FromIsland:      0,
		Fitness:         []float64{1.5, 2.5},
		ChromosomeBytes: [][][]byte{{{1, 2}}, {{3, 4}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, ring.Of(0).Send(ctx, 1, msg))

	got, err := ring.Of(1).Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg.Fitness, got.Fitness)
	assert.Equal(t, msg.ChromosomeBytes, got.ChromosomeBytes)
}

func TestChannelRing_ReceiveRespectsContextCancellation(t *testing.T) {
	ring := NewChannelRing(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ring.Of(0).Receive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToEnvelope(t *testing.T) {
	msg := core.MigrationMessage{
		Fitness:         []float64{1, 2, 3},
		ChromosomeBytes: [][][]byte{{{1, 2, 3}}, {{4, 5, 6}}, {{7, 8, 9}}},
	}
	env := ToEnvelope(msg)
	assert.Equal(t, 3, env.NumEntities)
	assert.Equal(t, 3, env.EntityLen)
	assert.Equal(t, msg.Fitness, env.Fitness)
}
