package flow

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/session"
)

func testActor(admin bool) Actor {
	return Actor{
		User:   &models.User{TelegramID: 42, FirstName: "Ann", IsAdmin: admin},
		ChatID: 100,
	}
}

// countingFlow asks for a number twice and records the finalize calls.
type countingFlow struct {
	mu        sync.Mutex
	finalized [][]int
	failWith  error
}

func (f *countingFlow) definition() *Definition {
	return &Definition{
		Kind:     session.FlowKind("counting"),
		Triggers: []string{"/count"},
		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			return "first", nil
		},
		Steps: map[session.Step]Step{
			"first": {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "First number?"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					n, err := strconv.Atoi(in.Text)
					if err != nil {
						return "", Reject("Please send a number.")
					}
					scratch["first"] = n
					return "second", nil
				},
			},
			"second": {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Second number?"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					n, err := strconv.Atoi(in.Text)
					if err != nil {
						return "", Reject("Please send a number.")
					}
					scratch["second"] = n
					return StepDone, nil
				},
			},
		},
		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			if f.failWith != nil {
				return "", f.failWith
			}
			first, _ := scratch.Int("first")
			second, _ := scratch.Int("second")
			f.mu.Lock()
			f.finalized = append(f.finalized, []int{first, second})
			f.mu.Unlock()
			return "Saved.", nil
		},
	}
}

func TestEngineUnmatchedInputReturnsNilReply(t *testing.T) {
	engine := NewEngine(session.NewMemoryStore(), (&countingFlow{}).definition())

	reply, err := engine.Handle(context.Background(), testActor(false), Input{Text: "hello"})

	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestEngineTriggerStartsFlowWithFirstPrompt(t *testing.T) {
	engine := NewEngine(session.NewMemoryStore(), (&countingFlow{}).definition())

	reply, err := engine.Handle(context.Background(), testActor(false), Input{Text: "/count"})

	require.NoError(t, err)
	require.NotNil(t, reply)
	require.NotNil(t, reply.Prompt)
	assert.Equal(t, "First number?", reply.Prompt.Text)
}

func TestEngineCompletesFlowAndFinalizesOnce(t *testing.T) {
	fl := &countingFlow{}
	engine := NewEngine(session.NewMemoryStore(), fl.definition())
	ctx := context.Background()
	actor := testActor(false)

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "3"})
	require.NoError(t, err)
	reply, err := engine.Handle(ctx, actor, Input{Text: "7"})
	require.NoError(t, err)

	require.NotNil(t, reply)
	assert.Equal(t, []string{"Saved."}, reply.Messages)
	require.Len(t, fl.finalized, 1)
	assert.Equal(t, []int{3, 7}, fl.finalized[0])

	// The session is gone; the same input no longer matches anything.
	reply, err = engine.Handle(ctx, actor, Input{Text: "9"})
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestEngineInvalidInputRepromptsWithoutAdvancing(t *testing.T) {
	fl := &countingFlow{}
	store := session.NewMemoryStore()
	engine := NewEngine(store, fl.definition())
	ctx := context.Background()
	actor := testActor(false)
	key := session.Key{ActorID: actor.User.TelegramID, ChatID: actor.ChatID}

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		reply, err := engine.Handle(ctx, actor, Input{Text: "not a number"})
		require.NoError(t, err)
		require.NotNil(t, reply)
		assert.Equal(t, []string{"Please send a number."}, reply.Messages)
		require.NotNil(t, reply.Prompt)
		assert.Equal(t, "First number?", reply.Prompt.Text)

		s, active, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, active)
		assert.Equal(t, session.Step("first"), s.Step)
		assert.Empty(t, s.Scratch)
	}

	// A valid input still advances normally afterwards.
	reply, err := engine.Handle(ctx, actor, Input{Text: "5"})
	require.NoError(t, err)
	assert.Equal(t, "Second number?", reply.Prompt.Text)
}

func TestEngineCancelClearsSession(t *testing.T) {
	fl := &countingFlow{}
	store := session.NewMemoryStore()
	engine := NewEngine(store, fl.definition())
	ctx := context.Background()
	actor := testActor(false)
	key := session.Key{ActorID: actor.User.TelegramID, ChatID: actor.ChatID}

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "3"})
	require.NoError(t, err)

	reply, err := engine.Handle(ctx, actor, Input{Text: CancelCommand})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cancelled."}, reply.Messages)

	_, active, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Empty(t, fl.finalized)
}

func TestEngineCancelWithoutSession(t *testing.T) {
	engine := NewEngine(session.NewMemoryStore(), (&countingFlow{}).definition())

	reply, err := engine.Handle(context.Background(), testActor(false), Input{Text: CancelCommand})

	require.NoError(t, err)
	assert.Equal(t, []string{"Nothing to cancel."}, reply.Messages)
}

func TestEngineTriggerDiscardsActiveSession(t *testing.T) {
	fl := &countingFlow{}
	other := &Definition{
		Kind:     session.FlowKind("other"),
		Triggers: []string{"/other"},
		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			return "only", nil
		},
		Steps: map[session.Step]Step{
			"only": {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Other flow."}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					return StepDone, nil
				},
			},
		},
		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			// Partial data from the discarded flow must not be visible here.
			if _, ok := scratch["first"]; ok {
				t.Error("scratch leaked across flows")
			}
			return "Done.", nil
		},
	}
	engine := NewEngine(session.NewMemoryStore(), fl.definition(), other)
	ctx := context.Background()
	actor := testActor(false)

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "3"})
	require.NoError(t, err)

	reply, err := engine.Handle(ctx, actor, Input{Text: "/other"})
	require.NoError(t, err)
	assert.Equal(t, "Other flow.", reply.Prompt.Text)

	reply, err = engine.Handle(ctx, actor, Input{Text: "go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Done."}, reply.Messages)
	assert.Empty(t, fl.finalized)
}

func TestEngineFinalizeFailureClearsSession(t *testing.T) {
	fl := &countingFlow{failWith: assert.AnError}
	store := session.NewMemoryStore()
	engine := NewEngine(store, fl.definition())
	ctx := context.Background()
	actor := testActor(false)
	key := session.Key{ActorID: actor.User.TelegramID, ChatID: actor.ChatID}

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "1"})
	require.NoError(t, err)
	reply, err := engine.Handle(ctx, actor, Input{Text: "2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Could not complete the action. Please try again later."}, reply.Messages)

	_, active, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, active, "a failed finalize must not leave the session behind")
}

func TestEngineFinalizeValidationFailureShowsReason(t *testing.T) {
	fl := &countingFlow{failWith: Reject("Numbers must differ.")}
	engine := NewEngine(session.NewMemoryStore(), fl.definition())
	ctx := context.Background()
	actor := testActor(false)

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "4"})
	require.NoError(t, err)
	reply, err := engine.Handle(ctx, actor, Input{Text: "4"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Numbers must differ."}, reply.Messages)
}

func TestEngineBeginRefusalCreatesNoSession(t *testing.T) {
	def := (&countingFlow{}).definition()
	def.Begin = func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
		return "", Reject("Finish your profile first.")
	}
	store := session.NewMemoryStore()
	engine := NewEngine(store, def)
	ctx := context.Background()
	actor := testActor(false)

	reply, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Finish your profile first."}, reply.Messages)
	assert.Nil(t, reply.Prompt)

	_, active, err := store.Get(ctx, session.Key{ActorID: actor.User.TelegramID, ChatID: actor.ChatID})
	require.NoError(t, err)
	assert.False(t, active)
}

func TestEngineAdminOnlyFlowRefusesNonAdmin(t *testing.T) {
	def := (&countingFlow{}).definition()
	def.AdminOnly = true
	engine := NewEngine(session.NewMemoryStore(), def)

	reply, err := engine.Handle(context.Background(), testActor(false), Input{Text: "/count"})
	require.NoError(t, err)
	assert.Equal(t, []string{"This action is not available."}, reply.Messages)

	reply, err = engine.Handle(context.Background(), testActor(true), Input{Text: "/count"})
	require.NoError(t, err)
	require.NotNil(t, reply.Prompt)
	assert.Equal(t, "First number?", reply.Prompt.Text)
}

func TestEngineRefusedAdminTriggerKeepsActiveSession(t *testing.T) {
	fl := &countingFlow{}
	restricted := (&countingFlow{}).definition()
	restricted.Kind = session.FlowKind("restricted")
	restricted.Triggers = []string{"/restricted"}
	restricted.AdminOnly = true
	engine := NewEngine(session.NewMemoryStore(), fl.definition(), restricted)
	ctx := context.Background()
	actor := testActor(false)

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "1"})
	require.NoError(t, err)

	reply, err := engine.Handle(ctx, actor, Input{Text: "/restricted"})
	require.NoError(t, err)
	assert.Equal(t, []string{"This action is not available."}, reply.Messages)

	// The refusal did not cost the actor their in-progress flow.
	reply, err = engine.Handle(ctx, actor, Input{Text: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Saved."}, reply.Messages)
	require.Len(t, fl.finalized, 1)
	assert.Equal(t, []int{1, 2}, fl.finalized[0])
}

func TestEngineSessionsAreIsolatedPerChat(t *testing.T) {
	fl := &countingFlow{}
	engine := NewEngine(session.NewMemoryStore(), fl.definition())
	ctx := context.Background()
	actor := testActor(false)
	sameUserOtherChat := Actor{User: actor.User, ChatID: 200}

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "1"})
	require.NoError(t, err)

	// The same user in another chat has no session there.
	reply, err := engine.Handle(ctx, sameUserOtherChat, Input{Text: "2"})
	require.NoError(t, err)
	assert.Nil(t, reply)

	// And the original chat is still on the second step.
	reply, err = engine.Handle(ctx, actor, Input{Text: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Saved."}, reply.Messages)
}

func TestEngineSerializesConcurrentInputs(t *testing.T) {
	fl := &countingFlow{}
	engine := NewEngine(session.NewMemoryStore(), fl.definition())
	ctx := context.Background()
	actor := testActor(false)

	_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
	require.NoError(t, err)
	_, err = engine.Handle(ctx, actor, Input{Text: "1"})
	require.NoError(t, err)

	// A double-submit of the terminal input: exactly one finalize may win.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Handle(ctx, actor, Input{Text: "2"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, fl.finalized, 1)
}

func TestEngineReleasesKeyLocksAfterHandling(t *testing.T) {
	fl := &countingFlow{}
	engine := NewEngine(session.NewMemoryStore(), fl.definition())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			actor := Actor{User: &models.User{TelegramID: 42, FirstName: "Ann"}, ChatID: chatID}
			_, err := engine.Handle(ctx, actor, Input{Text: "/count"})
			assert.NoError(t, err)
			_, err = engine.Handle(ctx, actor, Input{Text: "1"})
			assert.NoError(t, err)
			_, err = engine.Handle(ctx, actor, Input{Text: "2"})
			assert.NoError(t, err)
		}(int64(1000 + i))
	}
	wg.Wait()

	// No input in flight: every per-key lock entry has been dropped.
	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Empty(t, engine.locks)
}
