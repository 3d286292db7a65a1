package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// ContactHandler accepts contact and demo-request submissions from the
// public site and hands them to the message broker. The actual email is
// sent by a consumer downstream of the queue.
type ContactHandler struct {
	publisher ports.ContactEventPublisher
	metrics   *metrics.Metrics
}

func NewContactHandler(publisher ports.ContactEventPublisher, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{publisher: publisher, metrics: m}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	School  string `json:"school,omitempty"`
	Message string `json:"message"`
}

type ContactResponse struct {
	Message string `json:"message"`
}

func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, ports.ContactKindMessage)
}

func (h *ContactHandler) DemoRequest(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, ports.ContactKindDemo)
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request, kind ports.ContactEventKind) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request payload"})
		return
	}
	if detail := validateContact(req, kind); detail != "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: detail})
		return
	}

	evt := ports.ContactEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		School:     strings.TrimSpace(req.School),
		Message:    strings.TrimSpace(req.Message),
		ReceivedAt: time.Now().UTC(),
	}
	if err := h.publisher.PublishContactRequested(r.Context(), evt); err != nil {
		log.Printf("contact: publish %s event failed: %v", kind, err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Detail: "unable to accept your request right now, please try again later"})
		return
	}

	h.metrics.ContactEvent(string(kind))
	writeJSON(w, http.StatusAccepted, ContactResponse{Message: "thank you, we will get back to you shortly"})
}

func validateContact(req ContactRequest, kind ports.ContactEventKind) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if kind == ports.ContactKindDemo && strings.TrimSpace(req.School) == "" {
		return "school name is required for a demo request"
	}
	if kind == ports.ContactKindMessage && strings.TrimSpace(req.Message) == "" {
		return "message is required"
	}
	return ""
}
