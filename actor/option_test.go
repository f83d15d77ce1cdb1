package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverware/actron/supervisor"
)

func TestDefaultSystemConfig(t *testing.T) {
	cfg := defaultSystemConfig()
	assert.Equal(t, defaultThroughput, cfg.throughput)
	assert.Equal(t, 0, cfg.defaultMailboxCapacity)
	assert.Equal(t, 30*time.Second, cfg.shutdownTimeout)
}

func TestWithThroughputIgnoresNonPositive(t *testing.T) {
	cfg := defaultSystemConfig()
	WithThroughput(0)(cfg)
	assert.Equal(t, defaultThroughput, cfg.throughput)
	WithThroughput(50)(cfg)
	assert.Equal(t, 50, cfg.throughput)
}

func TestWithShutdownTimeoutIgnoresNonPositive(t *testing.T) {
	cfg := defaultSystemConfig()
	WithShutdownTimeout(-1)(cfg)
	assert.Equal(t, 30*time.Second, cfg.shutdownTimeout)
	WithShutdownTimeout(5 * time.Second)(cfg)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
}

func TestWithDefaultSupervisorStrategy(t *testing.T) {
	cfg := defaultSystemConfig()
	WithDefaultSupervisorStrategy(supervisor.WithStrategy(supervisor.AllForOne))(cfg)
	require.Len(t, cfg.strategyOpts, 1)
}

func TestSpawnConfigDefaultsToUnboundedMailbox(t *testing.T) {
	system := &ActorSystem{throughput: 7}
	cfg := newSpawnConfig(system)
	assert.Equal(t, 7, cfg.throughput)
	_, isDefault := cfg.mailbox.(*DefaultMailbox)
	assert.True(t, isDefault)
}

func TestSpawnConfigHonorsSystemDefaultCapacity(t *testing.T) {
	system := &ActorSystem{throughput: 5, defaultMailboxCapacity: 3}
	cfg := newSpawnConfig(system)
	_, isBounded := cfg.mailbox.(*BoundedMailbox)
	assert.True(t, isBounded)
}

func TestWithMailboxCapacityOverridesWithMailbox(t *testing.T) {
	cfg := &spawnConfig{mailbox: NewDefaultMailbox()}
	WithMailbox(NewDefaultMailbox())(cfg)
	WithMailboxCapacity(2, false)(cfg)
	_, isBounded := cfg.mailbox.(*BoundedMailbox)
	assert.True(t, isBounded)
}

func TestWithCellThroughputIgnoresNonPositive(t *testing.T) {
	cfg := &spawnConfig{throughput: 10}
	WithCellThroughput(0)(cfg)
	assert.Equal(t, 10, cfg.throughput)
	WithCellThroughput(3)(cfg)
	assert.Equal(t, 3, cfg.throughput)
}

func TestWithSupervisorOverride(t *testing.T) {
	sup := supervisor.New(supervisor.WithStrategy(supervisor.AllForOne))
	cfg := &spawnConfig{}
	WithSupervisor(sup)(cfg)
	assert.Same(t, sup, cfg.supervisor)
}
