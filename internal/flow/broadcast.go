package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

// Broadcast composition is admin-only: message body, explicit
// confirmation, then a fan-out over every known user with per-recipient
// outcome counting.
const (
	stepBcBody    session.Step = "body"
	stepBcConfirm session.Step = "confirm"
)

const (
	choiceBroadcastSend   = "broadcast_send"
	choiceBroadcastCancel = "broadcast_cancel"
)

func NewBroadcastFlow(broadcasts service.BroadcastService) *Definition {
	return &Definition{
		Kind:      session.FlowBroadcast,
		Triggers:  []string{"/broadcast"},
		AdminOnly: true,

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			return stepBcBody, nil
		},

		Steps: map[session.Step]Step{
			stepBcBody: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Enter the broadcast text:\n\nUse /cancel to abort"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					text := strings.TrimSpace(in.Text)
					if text == "" {
						return "", Reject("Enter the message text")
					}
					scratch["text"] = text
					return stepBcConfirm, nil
				},
			},

			stepBcConfirm: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					text, _ := scratch.String("text")
					return Prompt{
						Text: "Broadcast preview\n\n" + text,
						Buttons: []Button{
							{Label: "Send", Data: choiceBroadcastSend},
							{Label: "Cancel", Data: choiceBroadcastCancel},
						},
					}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					switch in.Choice {
					case choiceBroadcastSend:
						return StepDone, nil
					case choiceBroadcastCancel:
						return StepCancelled, nil
					}
					return "", Reject("Please confirm with the buttons")
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			text, _ := scratch.String("text")
			result, err := broadcasts.Run(ctx, actor.User.ID, text)
			if err != nil {
				return "", fmt.Errorf("run broadcast: %w", err)
			}
			return fmt.Sprintf("Broadcast complete.\nTotal: %d\nDelivered: %d\nFailed: %d",
				result.Total, result.Success, result.Fail), nil
		},
	}
}
