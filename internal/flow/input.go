package flow

// Geo is a geolocation attached to a chat message.
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Input is one incoming user action. Exactly one of Text, Choice or
// Location is expected to be set: free text, a keyboard selection, or a
// shared geolocation.
type Input struct {
	Text     string
	Choice   string
	Location *Geo
}

// Button is one keyboard option offered with a prompt. Data comes back
// as Input.Choice when the user picks it.
type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Prompt is what the engine asks the user next.
type Prompt struct {
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

// Reply is the engine's answer to one input: zero or more feedback
// messages plus the next prompt while a flow stays active.
type Reply struct {
	Messages []string
	Prompt   *Prompt
}

func (r *Reply) say(format string) {
	r.Messages = append(r.Messages, format)
}
