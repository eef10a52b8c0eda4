package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

// Personal message composition (admin-only): pick a recipient from a
// paged user list, enter the text, confirm, send to that one chat.
const (
	stepPmSelect  session.Step = "recipient"
	stepPmBody    session.Step = "body"
	stepPmConfirm session.Step = "confirm"
)

const (
	pmPageSize           = 10
	recipientIdxPrefix   = "recipient_"
	choicePmPageNext     = "recipients_next"
	choicePmPagePrev     = "recipients_prev"
	choicePersonalSend   = "personal_send"
	choicePersonalCancel = "personal_cancel"
)

func NewPersonalMessageFlow(profiles service.ProfileService, broadcasts service.BroadcastService) *Definition {
	loadPage := func(ctx context.Context, scratch session.Scratch, page int) error {
		users, err := profiles.ListUsers(ctx, page*pmPageSize, pmPageSize)
		if err != nil {
			return err
		}
		labels := make([]string, len(users))
		chats := make([]string, len(users))
		for i, user := range users {
			labels[i] = userLabel(user)
			chats[i] = strconv.FormatInt(user.TelegramID, 10)
		}
		scratch["page"] = page
		scratch["labels"] = labels
		scratch["chats"] = chats
		return nil
	}

	return &Definition{
		Kind:      session.FlowPersonalMessage,
		Triggers:  []string{"/message"},
		AdminOnly: true,

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			if err := loadPage(ctx, scratch, 0); err != nil {
				return "", err
			}
			return stepPmSelect, nil
		},

		Steps: map[session.Step]Step{
			stepPmSelect: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					var buttons []Button
					for i, label := range scratch.Strings("labels") {
						buttons = append(buttons, Button{Label: label, Data: fmt.Sprintf("%s%d", recipientIdxPrefix, i)})
					}
					page, _ := scratch.Int("page")
					if page > 0 {
						buttons = append(buttons, Button{Label: "Back", Data: choicePmPagePrev})
					}
					if len(scratch.Strings("labels")) == pmPageSize {
						buttons = append(buttons, Button{Label: "Next", Data: choicePmPageNext})
					}
					return Prompt{Text: "Pick a user to message:", Buttons: buttons}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					page, _ := scratch.Int("page")
					switch in.Choice {
					case choicePmPageNext:
						if err := loadPage(ctx, scratch, page+1); err != nil {
							return "", err
						}
						return stepPmSelect, nil
					case choicePmPagePrev:
						if page > 0 {
							if err := loadPage(ctx, scratch, page-1); err != nil {
								return "", err
							}
						}
						return stepPmSelect, nil
					}

					idxStr, ok := strings.CutPrefix(in.Choice, recipientIdxPrefix)
					if !ok {
						return "", Reject("Please pick a user with the buttons")
					}
					idx, err := strconv.Atoi(idxStr)
					chats := scratch.Strings("chats")
					labels := scratch.Strings("labels")
					if err != nil || idx < 0 || idx >= len(chats) {
						return "", Reject("User not found")
					}
					scratch["target_chat"] = chats[idx]
					scratch["target_label"] = labels[idx]
					return stepPmBody, nil
				},
			},

			stepPmBody: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					label, _ := scratch.String("target_label")
					return Prompt{Text: "Enter the message for " + label + ":"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					text := strings.TrimSpace(in.Text)
					if text == "" {
						return "", Reject("Enter the message text")
					}
					scratch["text"] = text
					return stepPmConfirm, nil
				},
			},

			stepPmConfirm: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					text, _ := scratch.String("text")
					return Prompt{
						Text: "Message preview\n\n" + text,
						Buttons: []Button{
							{Label: "Send", Data: choicePersonalSend},
							{Label: "Cancel", Data: choicePersonalCancel},
						},
					}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					switch in.Choice {
					case choicePersonalSend:
						return StepDone, nil
					case choicePersonalCancel:
						return StepCancelled, nil
					}
					return "", Reject("Please confirm with the buttons")
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			text, _ := scratch.String("text")
			rawChat, _ := scratch.String("target_chat")
			chatID, err := strconv.ParseInt(rawChat, 10, 64)
			if err != nil {
				return "", fmt.Errorf("parse collected chat id: %w", err)
			}
			if err := broadcasts.SendPersonal(ctx, chatID, text); err != nil {
				return "", Reject("Could not deliver the message.")
			}
			return "Message sent.", nil
		},
	}
}

func userLabel(user models.User) string {
	name := user.FirstName
	if name == "" {
		name = "User"
	}
	if user.Username != "" {
		return name + " (@" + user.Username + ")"
	}
	return name
}
