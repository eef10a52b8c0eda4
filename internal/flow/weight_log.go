package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

// Weight logging starts at exercise choice when the actor already has
// recorded exercises, otherwise straight at free-text entry.
const (
	stepWtChoice session.Step = "exercise_choice"
	stepWtInput  session.Step = "exercise_input"
	stepWtDate   session.Step = "date"
	stepWtValue  session.Step = "weight"
)

const (
	weightDateLayout  = "02.01.2006"
	choiceExerciseNew = "exercise_new"
	choiceDateToday   = "date_today"
	exerciseIdxPrefix = "exercise_"
)

func NewWeightLoggingFlow(weights service.WeightService) *Definition {
	return &Definition{
		Kind:     session.FlowWeightLogging,
		Triggers: []string{"/addweight"},

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			exercises, err := weights.Exercises(ctx, actor.User.ID)
			if err != nil {
				return "", err
			}
			if len(exercises) == 0 {
				return stepWtInput, nil
			}
			scratch["exercises"] = exercises
			return stepWtChoice, nil
		},

		Steps: map[session.Step]Step{
			stepWtChoice: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					var buttons []Button
					for i, name := range scratch.Strings("exercises") {
						buttons = append(buttons, Button{Label: name, Data: fmt.Sprintf("%s%d", exerciseIdxPrefix, i)})
					}
					buttons = append(buttons, Button{Label: "Enter new", Data: choiceExerciseNew})
					return Prompt{Text: "Pick an exercise or enter a new one:", Buttons: buttons}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					if in.Choice == choiceExerciseNew {
						return stepWtInput, nil
					}
					idxStr, ok := strings.CutPrefix(in.Choice, exerciseIdxPrefix)
					if !ok {
						return "", Reject("Please pick an exercise with the buttons")
					}
					idx, err := strconv.Atoi(idxStr)
					exercises := scratch.Strings("exercises")
					if err != nil || idx < 0 || idx >= len(exercises) {
						return "", Reject("Exercise not found")
					}
					scratch["exercise"] = exercises[idx]
					return stepWtDate, nil
				},
			},

			stepWtInput: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Enter the exercise name:"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					name := strings.TrimSpace(in.Text)
					if len([]rune(name)) < 2 {
						return "", Reject("Enter a valid exercise name")
					}
					scratch["exercise"] = name
					return stepWtDate, nil
				},
			},

			stepWtDate: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{
						Text:    "Enter the measurement date (DD.MM.YYYY):",
						Buttons: []Button{{Label: "Today", Data: choiceDateToday}},
					}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					if in.Choice == choiceDateToday {
						scratch["date"] = time.Now().Format(weightDateLayout)
						return stepWtValue, nil
					}
					raw := strings.TrimSpace(in.Text)
					date, err := time.ParseInLocation(weightDateLayout, raw, time.Local)
					if err != nil {
						return "", Reject("Invalid date format. Use DD.MM.YYYY")
					}
					if date.After(time.Now()) {
						return "", Reject("The date cannot be in the future")
					}
					scratch["date"] = raw
					return stepWtValue, nil
				},
			},

			stepWtValue: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					return Prompt{Text: "Enter the weight (e.g. 45.5):"}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					raw := strings.ReplaceAll(strings.TrimSpace(in.Text), ",", ".")
					weight, err := strconv.ParseFloat(raw, 64)
					if err != nil || weight <= 0 {
						return "", Reject("Enter a valid weight (e.g. 45.5)")
					}
					scratch["weight"] = weight
					return StepDone, nil
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			exercise, _ := scratch.String("exercise")
			rawDate, _ := scratch.String("date")
			weight, _ := scratch.Float("weight")

			date, err := time.ParseInLocation(weightDateLayout, rawDate, time.Local)
			if err != nil {
				return "", fmt.Errorf("parse collected date: %w", err)
			}

			if _, err := weights.AddRecord(ctx, actor.User.ID, exercise, date, weight); err != nil {
				return "", fmt.Errorf("add weight record: %w", err)
			}
			return fmt.Sprintf("Record added: %s — %s kg", exercise, formatWeight(weight)), nil
		},
	}
}

// formatWeight drops trailing zeros: 45.50 -> 45.5, 60.00 -> 60.
func formatWeight(value float64) string {
	text := strconv.FormatFloat(value, 'f', 2, 64)
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}
