package session

// Key identifies one conversation: a user talking in a chat. A user may
// run independent flows in different chats.
type Key struct {
	ActorID int64
	ChatID  int64
}

type FlowKind string

const (
	FlowNone            FlowKind = ""
	FlowRegistration    FlowKind = "registration"
	FlowEventCreation   FlowKind = "event_creation"
	FlowWeightLogging   FlowKind = "weight_logging"
	FlowWeightProgress  FlowKind = "weight_progress"
	FlowBroadcast       FlowKind = "broadcast"
	FlowPersonalMessage FlowKind = "personal_message"
)

// Step names a position inside a flow. Step values are scoped to their
// flow kind; the engine never compares steps across kinds.
type Step string

// Session is the per-(actor, chat) record of the active flow, the
// current step and the data collected so far. No domain write happens
// until the terminal step, so losing a session only restarts the flow.
type Session struct {
	Flow    FlowKind `json:"flow"`
	Step    Step     `json:"step"`
	Scratch Scratch  `json:"scratch"`
}

func New(flow FlowKind, step Step) *Session {
	return &Session{Flow: flow, Step: step, Scratch: Scratch{}}
}
