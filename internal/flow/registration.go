package flow

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sportmeet/sportmeet/internal/repository"
	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

// Registration collects age, gender, city and a non-empty sport
// selection, then creates or updates the actor's profile in one write.
const (
	stepRegAge    session.Step = "age"
	stepRegGender session.Step = "gender"
	stepRegCity   session.Step = "city"
	stepRegSports session.Step = "sports"
)

const (
	choiceGenderMale   = "gender_male"
	choiceGenderFemale = "gender_female"
	choiceSportsDone   = "sports_done"
	sportChoicePrefix  = "sport_"
)

func NewRegistrationFlow(profiles service.ProfileService, sports repository.SportRepository) *Definition {
	return &Definition{
		Kind:     session.FlowRegistration,
		Triggers: []string{"/register"},

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			if actor.User.HasProfile() {
				return "", Reject("You are already registered. Use /profile to edit your data.")
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
			return stepRegAge, nil
		},

		Steps: map[session.Step]Step{
			stepRegAge: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Let's fill in your profile!\n\nHow old are you? (send a number)\n\nUse /cancel to abort"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					age, err := strconv.Atoi(strings.TrimSpace(in.Text))
					if err != nil {
						return "", Reject("Please send a number (your age), e.g. 25")
					}
					if age < 10 || age > 100 {
						return "", Reject("Please enter a realistic age (10-100)")
					}
					scratch["age"] = age
					return stepRegGender, nil
				},
			},

			stepRegGender: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{
						Text: "Select your gender:",
						Buttons: []Button{
							{Label: "Male", Data: choiceGenderMale},
							{Label: "Female", Data: choiceGenderFemale},
						},
					}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					switch in.Choice {
					case choiceGenderMale:
						scratch["gender"] = "male"
					case choiceGenderFemale:
						scratch["gender"] = "female"
					default:
						return "", Reject("Please pick a gender with the buttons")
					}
					return stepRegCity, nil
				},
			},

			stepRegCity: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Which city are you in?\nSend the city name:"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					city := strings.TrimSpace(in.Text)
					if len([]rune(city)) < 2 {
						return "", Reject("City name is too short")
					}
					scratch["city"] = city
					return stepRegSports, nil
				},
			},

			stepRegSports: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					selected := scratch.Strings("sports")
					text := "Select the sports you do:\n(pick several, then press Done)"
					if len(selected) > 0 {
						text += "\n\nSelected: " + strings.Join(selected, ", ")
					}
					var buttons []Button
					for _, name := range scratch.Strings("catalog") {
						buttons = append(buttons, Button{Label: name, Data: sportChoicePrefix + name})
					}
					buttons = append(buttons, Button{Label: "Done", Data: choiceSportsDone})
					return Prompt{Text: text, Buttons: buttons}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					if in.Choice == choiceSportsDone {
						if len(scratch.Strings("sports")) == 0 {
							return "", Reject("Pick at least one sport")
						}
						return StepDone, nil
					}

					name, ok := strings.CutPrefix(in.Choice, sportChoicePrefix)
					if !ok {
						return "", Reject("Please pick sports with the buttons")
					}
					if !slices.Contains(scratch.Strings("catalog"), name) {
						return "", Reject("Unknown sport: %s", name)
					}

					// Repeated selection toggles the sport off again.
					selected := scratch.Strings("sports")
					if i := slices.Index(selected, name); i >= 0 {
						selected = slices.Delete(selected, i, i+1)
					} else {
						selected = append(selected, name)
					}
					scratch["sports"] = selected
					return stepRegSports, nil
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			age, _ := scratch.Int("age")
			gender, _ := scratch.String("gender")
			city, _ := scratch.String("city")

			_, err := profiles.Update(ctx, actor.User.ID, service.ProfileUpdate{
				Age:    &age,
				Gender: gender,
				City:   city,
				Sports: scratch.Strings("sports"),
			})
			if err != nil {
				return "", fmt.Errorf("save profile: %w", err)
			}
			return "Your profile is ready!\n\nYou can now:\n- create trainings\n- find and join trainings\n- edit your profile", nil
		},
	}
}
