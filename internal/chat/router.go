// Package chat routes incoming updates: multi-step conversations go to
// the flow engine, stateless actions (apply, approve, reject, listings)
// are handled directly against the domain services.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sportmeet/sportmeet/internal/flow"
	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/notify"
	"github.com/sportmeet/sportmeet/internal/service"
)

const (
	applyPrefix   = "apply_"
	approvePrefix = "approve_"
	rejectPrefix  = "reject_"
)

type Router struct {
	engine       *flow.Engine
	profiles     service.ProfileService
	events       service.EventService
	applications service.ApplicationService
	dispatcher   notify.Dispatcher
}

func NewRouter(
	engine *flow.Engine,
	profiles service.ProfileService,
	events service.EventService,
	applications service.ApplicationService,
	dispatcher notify.Dispatcher,
) *Router {
	return &Router{
		engine:       engine,
		profiles:     profiles,
		events:       events,
		applications: applications,
		dispatcher:   dispatcher,
	}
}

// HandleUpdate processes one update end to end and sends any responses
// through the dispatcher. It only returns an error when the update could
// not be processed at all and should be redelivered.
func (r *Router) HandleUpdate(ctx context.Context, update Update) error {
	user, err := r.profiles.GetOrCreate(ctx, update.UserID, update.Username, update.FirstName)
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}

	actor := flow.Actor{User: user, ChatID: update.ChatID}

	reply, err := r.engine.Handle(ctx, actor, update.input())
	if err != nil {
		return fmt.Errorf("flow engine: %w", err)
	}
	if reply != nil {
		r.deliver(ctx, update.ChatID, reply)
		return nil
	}

	// Not a flow input: stateless commands and lifecycle actions.
	switch {
	case update.Choice != "":
		r.handleAction(ctx, user, update)
	case strings.TrimSpace(update.Text) == "/start":
		r.send(ctx, update.ChatID, welcomeText(user))
	case strings.TrimSpace(update.Text) == "/help":
		r.send(ctx, update.ChatID, helpText())
	case strings.TrimSpace(update.Text) == "/profile":
		r.send(ctx, update.ChatID, profileText(user))
	case strings.TrimSpace(update.Text) == "/events":
		r.listEvents(ctx, user, update.ChatID)
	case strings.TrimSpace(update.Text) == "/myevents":
		r.myEvents(ctx, user, update.ChatID)
	case strings.TrimSpace(update.Text) == "/applications":
		r.listApplications(ctx, user, update.ChatID)
	default:
		r.send(ctx, update.ChatID, "I don't understand. Try /help to see the commands.")
	}
	return nil
}

func (r *Router) handleAction(ctx context.Context, user *models.User, update Update) {
	switch {
	case strings.HasPrefix(update.Choice, applyPrefix):
		r.apply(ctx, user, update.ChatID, update.Choice)
	case strings.HasPrefix(update.Choice, approvePrefix):
		r.review(ctx, user, update.ChatID, update.Choice, approvePrefix, service.DecisionApprove)
	case strings.HasPrefix(update.Choice, rejectPrefix):
		r.review(ctx, user, update.ChatID, update.Choice, rejectPrefix, service.DecisionReject)
	default:
		r.send(ctx, update.ChatID, "This button is no longer active.")
	}
}

func (r *Router) apply(ctx context.Context, user *models.User, chatID int64, choice string) {
	eventID, err := parseID(choice, applyPrefix)
	if err != nil {
		r.send(ctx, chatID, "Invalid event reference.")
		return
	}

	_, err = r.applications.Apply(ctx, eventID, user.ID)
	if err != nil {
		r.send(ctx, chatID, applyFailureText(err))
		return
	}

	r.send(ctx, chatID, "Your application was sent to the organizer.\nYou will be notified once it is reviewed.")

	// Tell the organizer; a failed notification never undoes the apply.
	event, err := r.events.Get(ctx, eventID)
	if err != nil {
		log.Printf("[Router] load event %d for notification: %v", eventID, err)
		return
	}
	creator, err := r.profiles.FindByID(ctx, event.CreatorID)
	if err != nil {
		log.Printf("[Router] load creator %d for notification: %v", event.CreatorID, err)
		return
	}
	text := fmt.Sprintf("New application for your training!\n\n%s\nFrom: %s", event.Title, user.FirstName)
	if user.Age != nil {
		text += fmt.Sprintf(", %d y.o.", *user.Age)
	}
	text += "\n\nUse /applications to review"
	r.send(ctx, creator.TelegramID, text)
}

func (r *Router) review(ctx context.Context, user *models.User, chatID int64, choice, prefix string, decision service.Decision) {
	applicationID, err := parseID(choice, prefix)
	if err != nil {
		r.send(ctx, chatID, "Invalid application reference.")
		return
	}

	app, err := r.applications.Review(ctx, applicationID, decision)
	if err != nil {
		r.send(ctx, chatID, reviewFailureText(err))
		return
	}

	applicant, err := r.profiles.FindByID(ctx, app.UserID)
	if err != nil {
		log.Printf("[Router] load applicant %d: %v", app.UserID, err)
		return
	}

	if decision == service.DecisionApprove {
		r.send(ctx, chatID, fmt.Sprintf("Application from %s approved.", applicant.FirstName))

		event, err := r.events.Get(ctx, app.EventID)
		if err != nil {
			log.Printf("[Router] load event %d: %v", app.EventID, err)
			return
		}
		text := fmt.Sprintf("Your application was approved!\n\n%s\n%s\n\nOrganizer: %s",
			event.Title, event.Date.Format("02.01.2006 15:04"), user.FirstName)
		if user.Username != "" {
			text += " @" + user.Username
		}
		r.send(ctx, applicant.TelegramID, text)
		return
	}

	r.send(ctx, chatID, "Application rejected.")
	r.send(ctx, applicant.TelegramID, "Unfortunately, your application was declined.")
}

func (r *Router) listEvents(ctx context.Context, user *models.User, chatID int64) {
	events, err := r.events.SearchUpcoming(ctx, 20)
	if err != nil {
		r.send(ctx, chatID, "Could not load trainings.")
		return
	}

	shown := 0
	for _, event := range events {
		if event.CreatorID == user.ID {
			continue
		}
		r.deliver(ctx, chatID, &flow.Reply{Prompt: &flow.Prompt{
			Text: eventCard(event),
			Buttons: []flow.Button{
				{Label: "Apply", Data: fmt.Sprintf("%s%d", applyPrefix, event.ID)},
			},
		}})
		shown++
		if shown == 10 {
			break
		}
	}

	if shown == 0 {
		r.send(ctx, chatID, "No upcoming trainings from other users yet.")
	}
}

func (r *Router) myEvents(ctx context.Context, user *models.User, chatID int64) {
	created, err := r.events.CreatedBy(ctx, user.ID)
	if err != nil {
		r.send(ctx, chatID, "Could not load trainings.")
		return
	}
	joined, err := r.events.JoinedBy(ctx, user.ID)
	if err != nil {
		r.send(ctx, chatID, "Could not load trainings.")
		return
	}

	if len(created) == 0 && len(joined) == 0 {
		r.send(ctx, chatID, "You have no trainings yet.\nCreate one with /newevent or join with /events!")
		return
	}

	var b strings.Builder
	b.WriteString("Your trainings:\n")
	if len(created) > 0 {
		b.WriteString("\nCreated by you:\n")
		for _, event := range created {
			fmt.Fprintf(&b, "- %s — %s\n", event.Title, event.Date.Format("02.01.2006 15:04"))
		}
	}
	if len(joined) > 0 {
		b.WriteString("\nYou participate:\n")
		for _, event := range joined {
			fmt.Fprintf(&b, "- %s — %s\n", event.Title, event.Date.Format("02.01.2006 15:04"))
		}
	}
	r.send(ctx, chatID, b.String())
}

func (r *Router) listApplications(ctx context.Context, user *models.User, chatID int64) {
	created, err := r.events.CreatedBy(ctx, user.ID)
	if err != nil {
		r.send(ctx, chatID, "Could not load applications.")
		return
	}
	if len(created) == 0 {
		r.send(ctx, chatID, "You have no created trainings yet.")
		return
	}

	found := false
	for _, event := range created {
		apps, err := r.applications.PendingForEvent(ctx, event.ID)
		if err != nil {
			log.Printf("[Router] pending for event %d: %v", event.ID, err)
			continue
		}
		for _, app := range apps {
			applicant, err := r.profiles.FindByID(ctx, app.UserID)
			if err != nil {
				continue
			}
			found = true
			text := fmt.Sprintf("Application for:\n%s\n\nFrom: %s", event.Title, applicant.FirstName)
			if applicant.Age != nil {
				text += fmt.Sprintf(", %d y.o.", *applicant.Age)
			}
			if applicant.City != "" {
				text += "\n" + applicant.City
			}
			r.deliver(ctx, chatID, &flow.Reply{Prompt: &flow.Prompt{
				Text: text,
				Buttons: []flow.Button{
					{Label: "Approve", Data: fmt.Sprintf("%s%d", approvePrefix, app.ID)},
					{Label: "Reject", Data: fmt.Sprintf("%s%d", rejectPrefix, app.ID)},
				},
			}})
		}
	}

	if !found {
		r.send(ctx, chatID, "No new applications for your trainings.")
	}
}

func (r *Router) deliver(ctx context.Context, chatID int64, reply *flow.Reply) {
	for _, msg := range reply.Messages {
		r.send(ctx, chatID, msg)
	}
	if reply.Prompt != nil {
		// TODO: carry prompt buttons through the outbound payload once the
		// gateway supports inline keyboards on notification.send.
		text := reply.Prompt.Text
		for _, button := range reply.Prompt.Buttons {
			text += fmt.Sprintf("\n[%s] -> %s", button.Label, button.Data)
		}
		r.send(ctx, chatID, text)
	}
}

func (r *Router) send(ctx context.Context, chatID int64, text string) {
	if err := r.dispatcher.Send(ctx, chatID, text); err != nil {
		log.Printf("[Router] send to %d failed: %v", chatID, err)
	}
}

func parseID(choice, prefix string) (uint, error) {
	raw := strings.TrimPrefix(choice, prefix)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func applyFailureText(err error) string {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return "This training no longer exists."
	case errors.Is(err, service.ErrSelfApplication):
		return "You cannot apply to your own training."
	case errors.Is(err, service.ErrDuplicateApplication):
		return "You already applied to this training."
	}
	return "Could not submit the application. Please try again later."
}

func reviewFailureText(err error) string {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		return "This application no longer exists."
	case errors.Is(err, service.ErrAlreadyReviewed):
		return "This application has already been reviewed."
	}
	return "Could not process the application. Please try again later."
}

func welcomeText(user *models.User) string {
	text := "Hi, " + user.FirstName + "!\n\nThis bot helps you organize and join sports trainings."
	if !user.HasProfile() {
		text += "\n\nStart with /register to fill in your profile."
	} else {
		text += "\n\nTry /events to find a training or /newevent to create one."
	}
	return text
}

func helpText() string {
	return "Available commands:\n\n" +
		"/events - find a training\n" +
		"/newevent - create a training\n" +
		"/myevents - your trainings\n" +
		"/applications - applications for your trainings\n" +
		"/register - fill in your profile\n" +
		"/profile - your profile\n" +
		"/addweight - log a working weight\n" +
		"/weights - weight progress\n" +
		"/cancel - cancel the current action"
}

func profileText(user *models.User) string {
	var b strings.Builder
	b.WriteString("Your profile:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", user.FirstName)
	if user.Username != "" {
		fmt.Fprintf(&b, "Username: @%s\n", user.Username)
	}
	if user.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *user.Age)
	}
	if user.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s\n", genderLabel(user.Gender))
	}
	if user.City != "" {
		fmt.Fprintf(&b, "City: %s\n", user.City)
	}
	if len(user.Sports) > 0 {
		names := make([]string, len(user.Sports))
		for i, sport := range user.Sports {
			names[i] = sport.Name
		}
		fmt.Fprintf(&b, "Sports: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "Registered: %s", user.CreatedAt.Format("02.01.2006"))
	if !user.HasProfile() {
		b.WriteString("\n\nYour profile is not complete yet. Use /register to fill it in.")
	}
	return b.String()
}

func genderLabel(gender string) string {
	switch gender {
	case "male":
		return "Male"
	case "female":
		return "Female"
	}
	return gender
}

func eventCard(event models.Event) string {
	text := fmt.Sprintf("%s\n%s", event.Title, event.Date.Format("02.01.2006 15:04"))
	if event.Location != "" {
		text += "\n" + event.Location
	}
	if event.Sport != nil {
		text += "\n" + event.Sport.Name
	}
	if event.MaxParticipants != nil {
		text += fmt.Sprintf("\nUp to %d people", *event.MaxParticipants)
	}
	if event.Fee != nil {
		text += fmt.Sprintf("\nFee: %.2f", *event.Fee)
	}
	return text
}
