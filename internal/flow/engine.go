package flow

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/sportmeet/sportmeet/internal/session"
)

// CancelCommand aborts the active flow from any step. It is the one
// input recognized regardless of the current step's validator.
const CancelCommand = "/cancel"

// Engine drives one step of a flow per incoming input. Inputs for the
// same (actor, chat) key are serialized with a per-key lock so a
// double-submit can never advance two steps from the same snapshot.
type Engine struct {
	store session.Store
	flows map[session.FlowKind]*Definition

	triggers map[string]session.FlowKind

	mu    sync.Mutex
	locks map[session.Key]*keyLock
}

// keyLock is reference counted so the locks map can shed entries once
// the last in-flight input for a key finishes.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewEngine(store session.Store, defs ...*Definition) *Engine {
	e := &Engine{
		store:    store,
		flows:    make(map[session.FlowKind]*Definition),
		triggers: make(map[string]session.FlowKind),
		locks:    make(map[session.Key]*keyLock),
	}
	for _, def := range defs {
		e.flows[def.Kind] = def
		for _, trigger := range def.Triggers {
			e.triggers[trigger] = def.Kind
		}
	}
	return e
}

// Handle processes one input for the actor. A nil Reply means the input
// neither matched an active session nor a flow trigger; the caller is
// free to route it elsewhere.
func (e *Engine) Handle(ctx context.Context, actor Actor, in Input) (*Reply, error) {
	key := session.Key{ActorID: actor.User.TelegramID, ChatID: actor.ChatID}

	unlock := e.lock(key)
	defer unlock()

	s, active, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(in.Text)

	if text == CancelCommand {
		if !active {
			return &Reply{Messages: []string{"Nothing to cancel."}}, nil
		}
		if err := e.store.Clear(ctx, key); err != nil {
			return nil, err
		}
		return &Reply{Messages: []string{"Cancelled."}}, nil
	}

	// A flow-start trigger always wins: switching flows silently discards
	// the previous session so no partial data leaks across flow kinds.
	// The admin gate runs first, so a refused trigger leaves whatever
	// flow was in progress untouched.
	if kind, ok := e.triggers[text]; ok {
		def := e.flows[kind]
		if def.AdminOnly && !actor.User.IsAdmin {
			return &Reply{Messages: []string{"This action is not available."}}, nil
		}
		if active {
			if err := e.store.Clear(ctx, key); err != nil {
				return nil, err
			}
		}
		return e.start(ctx, key, def, actor)
	}

	if !active {
		return nil, nil
	}

	return e.advance(ctx, key, s, actor, in)
}

func (e *Engine) start(ctx context.Context, key session.Key, def *Definition, actor Actor) (*Reply, error) {
	scratch := session.Scratch{}
	first, err := def.Begin(ctx, actor, scratch)
	if err != nil {
		if IsValidation(err) {
			return &Reply{Messages: []string{err.Error()}}, nil
		}
		log.Printf("[FlowEngine] begin %s failed: %v", def.Kind, err)
		return &Reply{Messages: []string{"Something went wrong. Please try again later."}}, nil
	}

	s := &session.Session{Flow: def.Kind, Step: first, Scratch: scratch}
	if err := e.store.Put(ctx, key, s); err != nil {
		return nil, err
	}

	prompt := def.Steps[first].Prompt(actor, scratch)
	return &Reply{Prompt: &prompt}, nil
}

func (e *Engine) advance(ctx context.Context, key session.Key, s *session.Session, actor Actor, in Input) (*Reply, error) {
	def, ok := e.flows[s.Flow]
	if !ok {
		// Session from a flow this engine no longer knows; drop it.
		_ = e.store.Clear(ctx, key)
		return &Reply{Messages: []string{"Cancelled."}}, nil
	}

	step := def.Steps[s.Step]
	next, err := step.Apply(ctx, actor, s.Scratch, in)
	if err != nil {
		// Any step failure, validation or not, re-prompts and leaves the
		// session unchanged. Repeated invalid input never advances state.
		reply := &Reply{}
		if IsValidation(err) {
			reply.say(err.Error())
		} else {
			log.Printf("[FlowEngine] step %s/%s failed: %v", s.Flow, s.Step, err)
			reply.say("Something went wrong. Please try again.")
		}
		prompt := step.Prompt(actor, s.Scratch)
		reply.Prompt = &prompt
		return reply, nil
	}

	switch next {
	case StepCancelled:
		if err := e.store.Clear(ctx, key); err != nil {
			return nil, err
		}
		return &Reply{Messages: []string{"Cancelled."}}, nil

	case StepDone:
		// The session is cleared no matter how Finalize ends: a failed
		// finalize must not leave a dangling terminal-state session.
		msg, ferr := def.Finalize(ctx, actor, s.Scratch)
		if err := e.store.Clear(ctx, key); err != nil {
			return nil, err
		}
		if ferr != nil {
			return &Reply{Messages: []string{finalizeFailureMessage(ferr)}}, nil
		}
		return &Reply{Messages: []string{msg}}, nil

	default:
		s.Step = next
		if err := e.store.Put(ctx, key, s); err != nil {
			return nil, err
		}
		prompt := def.Steps[next].Prompt(actor, s.Scratch)
		return &Reply{Prompt: &prompt}, nil
	}
}

func finalizeFailureMessage(err error) string {
	if IsValidation(err) {
		return err.Error()
	}
	log.Printf("[FlowEngine] finalize failed: %v", err)
	return "Could not complete the action. Please try again later."
}

func (e *Engine) lock(key session.Key) func() {
	e.mu.Lock()
	l, ok := e.locks[key]
	if !ok {
		l = &keyLock{}
		e.locks[key] = l
	}
	l.refs++
	e.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, key)
		}
		e.mu.Unlock()
	}
}
