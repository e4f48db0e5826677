package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
	"visitor-insights-service/internal/service"
)

// Greeting opens every new conversation.
const Greeting = "Hi! I'm your Advikentures assistant. How can I help you today?"

const (
	bookingReply = "I can help you with booking information! Our packages start from ₹19,999. " +
		"Would you like to know more about specific packages or locations? You can also use our booking form to make a reservation."
	activityReply = "We offer a wide range of adventure activities including bungee jumping, river rafting, paragliding, and more. " +
		"Which activity interests you the most?"
	locationReply = "We operate in several locations across India including Manali, Rishikesh, Spiti Valley, and more. " +
		"Each location offers unique experiences. Would you like to know more about a specific location?"
	ticketReply = "I've created a support ticket for you. Our team will contact you soon. " +
		"In the meantime, you can reach us at info@advikentures.com or call us at +916395406996."
	supportFallbackReply = "You can reach our support team at info@advikentures.com or call us at +916395406996."
	defaultReply         = "I understand you're interested in our services. To better assist you, would you like to know more " +
		"about our packages, activities, or locations? You can also contact our team directly for personalized assistance."
)

// transcriptTail is how many recent turns a support ticket captures.
const transcriptTail = 5

// Responder answers widget messages by keyword matching. Support
// requests additionally file an enquiry and a notification intent.
type Responder struct {
	enquiries  repository.EnquiryRepository
	dispatcher service.Dispatcher
	tracker    service.Tracker
}

// NewResponder constructs a Responder.
func NewResponder(enquiries repository.EnquiryRepository, dispatcher service.Dispatcher, tracker service.Tracker) *Responder {
	return &Responder{
		enquiries:  enquiries,
		dispatcher: dispatcher,
		tracker:    tracker,
	}
}

// Reply produces the assistant's answer for one user message. It always
// returns a usable reply; ticket-filing problems degrade to the plain
// contact details.
func (r *Responder) Reply(ctx context.Context, req model.ChatRequest) string {
	r.trackMessage("user_message", req.Client)

	reply := r.answer(ctx, req)

	r.trackMessage("bot_response", req.Client)
	return reply
}

func (r *Responder) answer(ctx context.Context, req model.ChatRequest) string {
	msg := strings.ToLower(req.Message)

	switch {
	case containsAny(msg, "book", "package", "price"):
		return bookingReply
	case containsAny(msg, "activity", "adventure", "sport"):
		return activityReply
	case containsAny(msg, "location", "where", "place"):
		return locationReply
	case containsAny(msg, "contact", "support", "help"):
		return r.openSupportTicket(ctx, req)
	default:
		return defaultReply
	}
}

func (r *Responder) openSupportTicket(ctx context.Context, req model.ChatRequest) string {
	transcript := formatTranscript(req.History)

	enquiry := model.Enquiry{
		ID:         uuid.New().String(),
		Name:       "Chat Support",
		Email:      "chat@advikentures.com",
		Subject:    "Chat Support Request",
		Message:    "Chat History:\n" + transcript,
		Status:     model.LeadPending,
		Source:     "chat",
		SourcePage: req.Client.Path,
	}

	if err := r.enquiries.Create(ctx, enquiry); err != nil {
		log.Printf("[ERROR] failed to create support ticket: %v", err)
		return supportFallbackReply
	}

	r.dispatcher.Send(ctx, model.NotificationIntent{
		Type:    model.NotificationEnquiry,
		Subject: "New Chat Support Request",
		Payload: model.NotificationPayload{
			Name:        "Chat Support",
			Email:       "chat@advikentures.com",
			PackageName: "Support Request",
			Message:     "Chat History:\n" + transcript,
		},
	})

	return ticketReply
}

func (r *Responder) trackMessage(kind string, client model.ClientContext) {
	r.tracker.TrackEvent(model.EventData{
		Name:       "chatbot_message",
		Properties: map[string]any{"type": kind},
	}, client)
}

func formatTranscript(history []model.ChatMessage) string {
	if len(history) > transcriptTail {
		history = history[len(history)-transcriptTail:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
