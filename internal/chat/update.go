package chat

import "github.com/sportmeet/sportmeet/internal/flow"

// Update is one incoming user action as delivered by the chat gateway,
// either over AMQP or the HTTP webhook.
type Update struct {
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	Text      string    `json:"text,omitempty"`
	Choice    string    `json:"choice,omitempty"`
	Location  *flow.Geo `json:"location,omitempty"`
}

func (u Update) input() flow.Input {
	return flow.Input{Text: u.Text, Choice: u.Choice, Location: u.Location}
}
