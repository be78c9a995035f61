package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ameliahb/go-inner-library/internal/db"
)

// Event types the handler acts on; anything else is acknowledged and
// ignored.
const (
	eventUserCreated = "user.created"
	eventUserDeleted = "user.deleted"
)

// UserStore is the slice of the user repository the handler needs.
type UserStore interface {
	Create(ctx context.Context, user *db.User) error
	Delete(ctx context.Context, id string) error
}

// event is the provider's webhook envelope.
type event struct {
	Type string    `json:"type"`
	Data eventData `json:"data"`
}

type eventData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []emailAddress `json:"email_addresses"`
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// Handler processes identity-provider webhooks.
type Handler struct {
	verifier *Verifier
	users    UserStore
	now      func() time.Time
}

// NewHandler creates a webhook handler.
func NewHandler(verifier *Verifier, users UserStore) *Handler {
	return &Handler{
		verifier: verifier,
		users:    users,
		now:      time.Now,
	}
}

// ServeHTTP verifies the event signature and mirrors user lifecycle
// changes into the backing store.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	msgID := r.Header.Get(HeaderID)
	timestamp := r.Header.Get(HeaderTimestamp)
	signature := r.Header.Get(HeaderSignature)

	if msgID == "" || timestamp == "" || signature == "" {
		http.Error(w, "missing webhook headers", http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(msgID, timestamp, signature, payload, h.now()); err != nil {
		log.Printf("Webhook verification failed: %v", err)
		http.Error(w, "webhook verification failed", http.StatusBadRequest)
		return
	}

	var evt event
	if err := json.Unmarshal(payload, &evt); err != nil {
		http.Error(w, "invalid webhook payload", http.StatusBadRequest)
		return
	}

	switch evt.Type {
	case eventUserCreated:
		h.handleUserCreated(w, r, evt.Data)
	case eventUserDeleted:
		h.handleUserDeleted(w, r, evt.Data)
	default:
		// Unknown event types are acknowledged so the provider stops
		// redelivering them.
		w.WriteHeader(http.StatusOK)
	}
}

// handleUserCreated provisions a users row keyed by the provider's id.
// The credential is a random placeholder; the provider owns
// authentication.
func (h *Handler) handleUserCreated(w http.ResponseWriter, r *http.Request, data eventData) {
	if len(data.EmailAddresses) == 0 || data.EmailAddresses[0].EmailAddress == "" {
		http.Error(w, "no email address found", http.StatusBadRequest)
		return
	}

	user := &db.User{
		ID:         data.ID,
		Email:      data.EmailAddresses[0].EmailAddress,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Credential: uuid.NewString(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		log.Printf("Error provisioning user %s: %v", data.ID, err)
		http.Error(w, "error creating user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// handleUserDeleted removes the mirrored users row. Deleting an id we
// never provisioned is surfaced as a server error rather than treated as
// an idempotent success: the provider retries failures, and a retried
// delete of a missing row is how operators notice a provisioning gap.
func (h *Handler) handleUserDeleted(w http.ResponseWriter, r *http.Request, data eventData) {
	if data.ID == "" {
		http.Error(w, "no user ID found", http.StatusBadRequest)
		return
	}

	if err := h.users.Delete(r.Context(), data.ID); err != nil {
		log.Printf("Error deleting user %s: %v", data.ID, err)
		http.Error(w, "error deleting user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
