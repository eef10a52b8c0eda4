package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

const stepProgChoice session.Step = "progress_exercise"

const (
	progressIdxPrefix = "progress_"
	progressLimit     = 5
)

// NewWeightProgressFlow shows the latest records for one exercise with
// the overall change across them.
func NewWeightProgressFlow(weights service.WeightService) *Definition {
	return &Definition{
		Kind:     session.FlowWeightProgress,
		Triggers: []string{"/weights"},

		Begin: func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error) {
			exercises, err := weights.Exercises(ctx, actor.User.ID)
			if err != nil {
				return "", err
			}
			if len(exercises) == 0 {
				return "", Reject("You have no exercises yet. Add a record with /addweight first.")
			}
			scratch["exercises"] = exercises
			return stepProgChoice, nil
		},

		Steps: map[session.Step]Step{
			stepProgChoice: {
				Prompt: func(actor Actor, scratch session.Scratch) Prompt {
					var buttons []Button
					for i, name := range scratch.Strings("exercises") {
						buttons = append(buttons, Button{Label: name, Data: fmt.Sprintf("%s%d", progressIdxPrefix, i)})
					}
					return Prompt{Text: "Pick an exercise to view progress:", Buttons: buttons}
				},
				Apply: func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error) {
					idxStr, ok := strings.CutPrefix(in.Choice, progressIdxPrefix)
					if !ok {
						return "", Reject("Please pick an exercise with the buttons")
					}
					idx, err := strconv.Atoi(idxStr)
					exercises := scratch.Strings("exercises")
					if err != nil || idx < 0 || idx >= len(exercises) {
						return "", Reject("Exercise not found")
					}
					scratch["exercise"] = exercises[idx]
					return StepDone, nil
				},
			},
		},

		Finalize: func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error) {
			exercise, _ := scratch.String("exercise")

			records, err := weights.Progress(ctx, actor.User.ID, exercise, progressLimit)
			if err != nil {
				return "", fmt.Errorf("load weight progress: %w", err)
			}
			if len(records) == 0 {
				return "No records for this exercise yet.", nil
			}

			// Records arrive newest first; show them oldest to newest.
			lines := []string{exercise}
			for i := len(records) - 1; i >= 0; i-- {
				lines = append(lines, fmt.Sprintf("- %s: %s kg", records[i].Date.Format(weightDateLayout), formatWeight(records[i].Weight)))
			}
			text := strings.Join(lines, "\n")
			if len(records) > 1 {
				first := records[len(records)-1].Weight
				last := records[0].Weight
				text += "\n\nChange: " + formatWeightDelta(last-first)
			}
			return text, nil
		},
	}
}

func formatWeightDelta(delta float64) string {
	switch {
	case delta > 0:
		return "+" + formatWeight(delta) + " kg"
	case delta < 0:
		return "-" + formatWeight(-delta) + " kg"
	}
	return "no change"
}
