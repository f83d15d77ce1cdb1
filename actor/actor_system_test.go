package actor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/silverware/actron/actor"
	akterrors "github.com/silverware/actron/errors"
	"github.com/silverware/actron/eventstream"
	"github.com/silverware/actron/supervisor"
	"github.com/silverware/actron/testkit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("github.com/silverware/actron/internal/workerpool.(*WorkerPool).runWorker"),
	)
}

func newTestSystem(t *testing.T, opts ...actor.Option) *actor.ActorSystem {
	t.Helper()
	system, err := actor.New(t.Name(), nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = system.Shutdown(ctx)
	})
	return system
}

// echoActor implements the doubling round-trip protocol: doubles a
// uint32 and replies to whoever sent it.
type echoActor struct {
	actor.NoOpHooks
}

func (echoActor) Receive(ctx *actor.ReceiveContext) {
	n, ok := ctx.Message().(uint32)
	if !ok {
		ctx.Unhandled()
		return
	}
	ctx.Respond(n * 2)
}

func TestEcho(t *testing.T) {
	system := newTestSystem(t)
	probe := testkit.NewProbe(t, system)

	echoRef, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "echo")
	require.NoError(t, err)

	require.NoError(t, echoRef.Tell(uint32(21), probe.Ref()))
	probe.ExpectMessage(uint32(42))
	require.True(t, probe.Sender().Equals(echoRef))
}

// flakyRecord is one lifecycle event recorded by flakyActor, used to
// assert the exact pre_start/pre_restart sequence around a panic.
type flakyRecord struct {
	event       string
	lastMessage any
}

type flakyActor struct {
	actor.NoOpHooks
	recorder chan flakyRecord
}

func (f *flakyActor) PreStart(*actor.Context) error {
	f.recorder <- flakyRecord{event: "pre_start"}
	return nil
}

func (f *flakyActor) PreRestart(_ *actor.Context, cause error, lastMessage any) error {
	_ = cause
	f.recorder <- flakyRecord{event: "pre_restart", lastMessage: lastMessage}
	return nil
}

func (f *flakyActor) Receive(ctx *actor.ReceiveContext) {
	if ctx.Message() == "boom" {
		panic("boom")
	}
	f.recorder <- flakyRecord{event: "handled", lastMessage: ctx.Message()}
}

func TestRestartOnPanic(t *testing.T) {
	system := newTestSystem(t)
	recorder := make(chan flakyRecord, 16)

	ref, err := system.ActorOf(func() actor.Actor {
		return &flakyActor{recorder: recorder}
	}, "flaky")
	require.NoError(t, err)

	next := func() flakyRecord {
		select {
		case r := <-recorder:
			return r
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for lifecycle record")
			return flakyRecord{}
		}
	}

	require.Equal(t, "pre_start", next().event)

	require.NoError(t, ref.Tell("boom", nil))
	restart := next()
	require.Equal(t, "pre_restart", restart.event)
	require.Equal(t, "boom", restart.lastMessage, "pre_restart must see m1 as the failing message")

	require.Equal(t, "pre_start", next().event, "a fresh instance runs pre_start again")

	require.NoError(t, ref.Tell("ok", nil))
	handled := next()
	require.Equal(t, "handled", handled.event)
	require.Equal(t, "ok", handled.lastMessage)

	select {
	case r := <-recorder:
		t.Fatalf("m1 must not be replayed, got unexpected record %#v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

type siblingRecord struct {
	path  string
	event string
}

type siblingActor struct {
	actor.NoOpHooks
	recorder chan siblingRecord
}

func (s *siblingActor) PreStart(ctx *actor.Context) error {
	s.recorder <- siblingRecord{path: ctx.Myself().Path().String(), event: "pre_start"}
	return nil
}

func (s *siblingActor) PreRestart(ctx *actor.Context, _ error, _ any) error {
	s.recorder <- siblingRecord{path: ctx.Myself().Path().String(), event: "pre_restart"}
	return nil
}

func (s *siblingActor) Receive(ctx *actor.ReceiveContext) {
	if ctx.Message() == "boom" {
		panic("boom")
	}
}

type parentActor struct {
	actor.NoOpHooks
	recorder chan siblingRecord
	names    []string
	children map[string]*actor.Ref
}

func (p *parentActor) PreStart(ctx *actor.Context) error {
	p.children = make(map[string]*actor.Ref)
	for _, name := range p.names {
		ref, err := ctx.ActorOf(func() actor.Actor {
			return &siblingActor{recorder: p.recorder}
		}, name)
		if err != nil {
			return err
		}
		p.children[name] = ref
	}
	return nil
}

func (p *parentActor) Receive(ctx *actor.ReceiveContext) {
	if name, ok := ctx.Message().(string); ok {
		p.children[name].Tell("boom", nil)
	}
}

func TestAllForOneCascade(t *testing.T) {
	system := newTestSystem(t)
	recorder := make(chan siblingRecord, 32)

	sup := supervisor.New(supervisor.WithStrategy(supervisor.AllForOne))
	parentRef, err := system.ActorOf(func() actor.Actor {
		return &parentActor{recorder: recorder, names: []string{"a", "b", "c"}}
	}, "parent", actor.WithSupervisor(sup))
	require.NoError(t, err)

	// drain the three initial pre_start records before triggering a failure.
	seen := map[string]int{}
	for i := 0; i < 3; i++ {
		select {
		case r := <-recorder:
			require.Equal(t, "pre_start", r.event)
			seen[r.path]++
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for initial pre_start records")
		}
	}
	require.Len(t, seen, 3)

	require.NoError(t, parentRef.Tell("b", nil))

	restarted := map[string]bool{}
	freshStart := map[string]bool{}
	for i := 0; i < 6; i++ {
		select {
		case r := <-recorder:
			switch r.event {
			case "pre_restart":
				restarted[r.path] = true
			case "pre_start":
				freshStart[r.path] = true
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for cascade records, got restarted=%v freshStart=%v", restarted, freshStart)
		}
	}
	require.Len(t, restarted, 3, "every sibling under AllForOne restarts, not just the failing one")
	require.Len(t, freshStart, 3)
}

func TestDeadLetterOnStoppedActor(t *testing.T) {
	system := newTestSystem(t)
	sub, err := system.Subscribe()
	require.NoError(t, err)
	defer func() { _ = system.Unsubscribe(sub) }()

	ref, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "X")
	require.NoError(t, err)

	ref.Stop()
	waitForPayload(t, sub, func(payload any) bool {
		term, ok := payload.(*actor.ActorTerminated)
		return ok && term.Ref.Path().String() == "/user/X"
	})

	require.NoError(t, ref.Tell("late", nil))

	letter := waitForPayload(t, sub, func(payload any) bool {
		dl, ok := payload.(*actor.DeadLetter)
		return ok && dl.RecipientPath == "/user/X"
	}).(*actor.DeadLetter)
	require.Equal(t, "/user/X", letter.RecipientPath)
}

func waitForPayload(t *testing.T, sub eventstream.Subscriber, match func(any) bool) any {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case msg := <-sub.C():
			if match(msg.Payload) {
				return msg.Payload
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching event")
			return nil
		}
	}
}

func TestSchedulerOnceCancelSuppressesDispatch(t *testing.T) {
	system := newTestSystem(t)
	probe := testkit.NewProbe(t, system)

	handle, err := system.Scheduler().ScheduleOnce(100*time.Millisecond, func() error {
		return probe.Ref().Tell("tick", nil)
	})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, system.Scheduler().Cancel(handle))

	probe.ExpectNoMessage()
}

// tickRecorder is a minimal actor used to observe repeated scheduled
// deliveries without the blocking, exactly-once assertions of testkit.Probe.
type tickRecorder struct {
	actor.NoOpHooks
	ticks chan struct{}
}

func (r *tickRecorder) Receive(*actor.ReceiveContext) {
	select {
	case r.ticks <- struct{}{}:
	default:
	}
}

func TestSchedulerAtIntervalDeliversUntilCancelled(t *testing.T) {
	system := newTestSystem(t)
	ticks := make(chan struct{}, 100)

	ref, err := system.ActorOf(func() actor.Actor {
		return &tickRecorder{ticks: ticks}
	}, "ticks")
	require.NoError(t, err)

	handle, err := system.Scheduler().ScheduleAtInterval(10*time.Millisecond, func() error {
		return ref.Tell(struct{}{}, nil)
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for interval tick")
		}
	}

	require.NoError(t, system.Scheduler().Cancel(handle))

	// drain any tick that raced with Cancel before requiring silence.
drain:
	for {
		select {
		case <-ticks:
			continue drain
		case <-time.After(50 * time.Millisecond):
			break drain
		}
	}

	select {
	case <-ticks:
		t.Fatal("received a tick after Cancel")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPubSubOrderedPerSubscriber(t *testing.T) {
	system := newTestSystem(t)
	s1 := testkit.NewProbe(t, system)
	s2 := testkit.NewProbe(t, system)

	channelRef, err := system.ActorOf(actor.NewChannel(), "channel")
	require.NoError(t, err)

	require.NoError(t, channelRef.Tell(&actor.Subscribe{Topic: "x", Subscriber: s1.Ref()}, nil))
	require.NoError(t, channelRef.Tell(&actor.Subscribe{Topic: "x", Subscriber: s2.Ref()}, nil))

	require.NoError(t, channelRef.Tell(&actor.Publish{Topic: "x", Msg: "m1"}, nil))
	require.NoError(t, channelRef.Tell(&actor.Publish{Topic: "x", Msg: "m2"}, nil))

	s1.ExpectMessage("m1")
	s1.ExpectMessage("m2")
	s2.ExpectMessage("m1")
	s2.ExpectMessage("m2")
}

func TestNameUniqueness(t *testing.T) {
	system := newTestSystem(t)

	_, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "dup")
	require.NoError(t, err)

	_, err = system.ActorOf(func() actor.Actor { return &echoActor{} }, "dup")
	require.ErrorIs(t, err, akterrors.ErrDuplicateName)
}

func TestInvalidName(t *testing.T) {
	system := newTestSystem(t)
	_, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "has/slash")
	require.ErrorIs(t, err, akterrors.ErrInvalidName)
}

func TestActorOfFailsAfterShutdown(t *testing.T) {
	system, err := actor.New("shutdown-test", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, system.Shutdown(ctx))

	_, err = system.ActorOf(func() actor.Actor { return &echoActor{} }, "too-late")
	require.ErrorIs(t, err, akterrors.ErrSystemStopped)
}

// watchRecorder watches its target on start and immediately unwatches, then
// forwards every message it is told (including *actor.Terminated, unlike
// testkit.Probe which deliberately swallows it) onto out.
type watchRecorder struct {
	actor.NoOpHooks
	target *actor.Ref
	out    chan any
}

func (w *watchRecorder) PreStart(ctx *actor.Context) error {
	ctx.Watch(w.target)
	ctx.Unwatch(w.target)
	return nil
}

func (w *watchRecorder) Receive(ctx *actor.ReceiveContext) {
	w.out <- ctx.Message()
}

func TestWatchThenUnwatchSuppressesTerminated(t *testing.T) {
	system := newTestSystem(t)

	targetRef, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "watched")
	require.NoError(t, err)

	out := make(chan any, 4)
	_, err = system.ActorOf(func() actor.Actor {
		return &watchRecorder{target: targetRef, out: out}
	}, "watcher")
	require.NoError(t, err)

	// give Watch/Unwatch a moment to land before the target terminates.
	time.Sleep(50 * time.Millisecond)
	targetRef.Stop()

	select {
	case msg := <-out:
		t.Fatalf("watcher should not have received anything after unwatch, got %#v", msg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSelectUnknownPathReturnsDeadRef(t *testing.T) {
	system := newTestSystem(t)
	ref := system.Select("/user/does-not-exist")
	require.NoError(t, ref.Tell("hello", nil))
}

func TestSelectByUID(t *testing.T) {
	system := newTestSystem(t)

	ref, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "uid-target")
	require.NoError(t, err)

	byUID := system.SelectByUID(ref.UID())
	require.True(t, byUID.Equals(ref))

	ref.Stop()
	time.Sleep(50 * time.Millisecond)

	stale := system.SelectByUID(ref.UID())
	require.False(t, stale.Equals(ref), "a terminated instance's uid must no longer resolve live")

	unknown := system.SelectByUID(ref.UID() + 1_000_000)
	require.False(t, unknown.Equals(ref))
}

func TestUserVisibleIdentify(t *testing.T) {
	system := newTestSystem(t)
	probe := testkit.NewProbe(t, system)

	target, err := system.ActorOf(func() actor.Actor { return &echoActor{} }, "identify-target")
	require.NoError(t, err)

	require.NoError(t, target.Tell(&actor.Identify{}, probe.Ref()))
	reply := probe.ExpectAnyMessage()
	identity, ok := reply.(*actor.ActorIdentity)
	require.True(t, ok, "expected *actor.ActorIdentity, got %#v", reply)
	require.True(t, identity.Ref.Equals(target))
}
