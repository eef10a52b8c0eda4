package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sportmeet/sportmeet/internal/repository"
	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
	"gorm.io/gorm"
)

// Event creation refuses to start until the actor's profile carries age
// and city. The sport step stores the resolved catalog id, never the
// free-text label.
const (
	stepEvtTitle session.Step = "title"
	stepEvtDate  session.Step = "date"
	stepEvtPlace session.Step = "location"
	stepEvtSport session.Step = "sport"
	stepEvtMax   session.Step = "max_participants"
	stepEvtFee   session.Step = "fee"
	stepEvtNote  session.Step = "note"
)

const (
	eventDateLayout   = "02.01.2006 15:04"
	eventSportPrefix  = "event_sport_"
	eventSkipSentinel = "skip"
)

func NewEventCreationFlow(events service.EventService, sports repository.SportRepository) *Definition {
	return &Definition{
		Kind:     session.FlowEventCreation,
		Triggers: []string{"/newevent"},

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			if !actor.User.HasProfile() {
				return "", Reject("Fill in your profile first!\nUse /register to get started.")
			}
			catalog, err := sports.ListActive(ctx)
			if err != nil {
				return "", err
			}
			names := make([]string, len(catalog))
			for i, sport := range catalog {
				names[i] = sport.Name
			}
			scratch["catalog"] = names
			return stepEvtTitle, nil
		},

		Steps: map[session.Step]Step{
			stepEvtTitle: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Creating a new training\n\nEnter the title:\n\nUse /cancel to abort"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					title := strings.TrimSpace(in.Text)
					if len([]rune(title)) < 3 {
						return "", Reject("The title must be at least 3 characters")
					}
					scratch["title"] = title
					return stepEvtDate, nil
				},
			},

			stepEvtDate: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Enter the date and time\nFormat: DD.MM.YYYY HH:MM\nExample: 25.12.2026 18:00"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					date, err := time.ParseInLocation(eventDateLayout, strings.TrimSpace(in.Text), time.Local)
					if err != nil {
						return "", Reject("Invalid date format. Use DD.MM.YYYY HH:MM, e.g. 25.12.2026 18:00")
					}
					if date.Before(time.Now()) {
						return "", Reject("The date cannot be in the past")
					}
					scratch["date"] = date.Format(time.RFC3339)
					return stepEvtPlace, nil
				},
			},

			stepEvtPlace: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Enter the venue\n(or share a geolocation)"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					if in.Location != nil {
						scratch["location"] = fmt.Sprintf("%v, %v", in.Location.Latitude, in.Location.Longitude)
						scratch.SetGeo("geo", in.Location.Latitude, in.Location.Longitude)
						return stepEvtSport, nil
					}
					place := strings.TrimSpace(in.Text)
					if place == "" {
						return "", Reject("Please provide the venue")
					}
					scratch["location"] = place
					return stepEvtSport, nil
				},
			},

			stepEvtSport: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					var buttons []Button
					for _, name := range scratch.Strings("catalog") {
						buttons = append(buttons, Button{Label: name, Data: eventSportPrefix + name})
					}
					return Prompt{Text: "Pick the sport:", Buttons: buttons}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					name, ok := strings.CutPrefix(in.Choice, eventSportPrefix)
					if !ok {
						return "", Reject("Please pick a sport with the buttons")
					}
					sport, err := sports.FindByName(ctx, name)
					if err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							return "", Reject("Unknown sport: %s", name)
						}
						return "", err
					}
					scratch["sport_id"] = int(sport.ID)
					scratch["sport_name"] = sport.Name
					return stepEvtMax, nil
				},
			},

			stepEvtMax: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "How many people do you need?\n(send a number, or 0 for no limit)"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					max, err := strconv.Atoi(strings.TrimSpace(in.Text))
					if err != nil {
						return "", Reject("Send a number, or 0 for no limit")
					}
					scratch["max_participants"] = max
					return stepEvtFee, nil
				},
			},

			stepEvtFee: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Is there a fee?\n(send the amount, or 0 if free)"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					raw := strings.ReplaceAll(strings.TrimSpace(in.Text), ",", ".")
					fee, err := strconv.ParseFloat(raw, 64)
					if err != nil {
						return "", Reject("Send the amount, or 0 if free")
					}
					scratch["fee"] = fee
					return stepEvtNote, nil
				},
			},

			stepEvtNote: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Add a note (optional)\nOr send 'skip'"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					note := strings.TrimSpace(in.Text)
					if note == "" {
						return "", Reject("Please send a note or 'skip'")
					}
					if strings.EqualFold(note, eventSkipSentinel) {
						note = ""
					}
					scratch["note"] = note
					return StepDone, nil
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			title, _ := scratch.String("title")
			rawDate, _ := scratch.String("date")
			date, err := time.Parse(time.RFC3339, rawDate)
			if err != nil {
				return "", fmt.Errorf("parse collected date: %w", err)
			}
			location, _ := scratch.String("location")
			note, _ := scratch.String("note")
			max, _ := scratch.Int("max_participants")
			fee, _ := scratch.Float("fee")

			input := service.CreateEventInput{
				Title:           title,
				Date:            date,
				Location:        location,
				MaxParticipants: max,
				Fee:             fee,
				Note:            note,
				CreatorID:       actor.User.ID,
			}
			if id, ok := scratch.Int("sport_id"); ok {
				sportID := uint(id)
				input.SportID = &sportID
			}
			if lat, lon, ok := scratch.Geo("geo"); ok {
				input.Latitude = &lat
				input.Longitude = &lon
			}

			event, err := events.Create(ctx, input)
			if err != nil {
				return "", fmt.Errorf("create event: %w", err)
			}

			text := fmt.Sprintf("Training created!\n\n%s\n%s",
				event.Title, event.Date.Format(eventDateLayout))
			if event.Location != "" {
				text += "\n" + event.Location
			}
			if name, ok := scratch.String("sport_name"); ok && name != "" {
				text += "\n" + name
			}
			if event.MaxParticipants != nil {
				text += fmt.Sprintf("\nUp to %d people", *event.MaxParticipants)
			}
			if event.Fee != nil {
				text += fmt.Sprintf("\nFee: %.2f", *event.Fee)
			}
			return text, nil
		},
	}
}
