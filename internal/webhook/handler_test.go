package webhook

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ameliahb/go-inner-library/internal/db"
)

type fakeUserStore struct {
	users     map[string]db.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]db.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *db.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestHandler(t *testing.T, users UserStore, now time.Time) *Handler {
	t.Helper()
	verifier, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier() error: %v", err)
	}
	h := NewHandler(verifier, users)
	h.now = func() time.Time { return now }
	return h
}

// signedRequest builds a request carrying a valid provider signature.
func signedRequest(t *testing.T, payload string, at time.Time) *http.Request {
	t.Helper()
	msgID := "msg_test"
	timestamp := fmt.Sprintf("%d", at.Unix())

	r := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader([]byte(payload)))
	r.Header.Set(HeaderID, msgID)
	r.Header.Set(HeaderTimestamp, timestamp)
	r.Header.Set(HeaderSignature, sign(t, testSecret, msgID, timestamp, []byte(payload)))
	return r
}

func TestHandlerRejectsUnverifiedRequests(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("missing headers", func(t *testing.T) {
		h := newTestHandler(t, newFakeUserStore(), now)
		r := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader([]byte("{}")))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		h := newTestHandler(t, newFakeUserStore(), now)
		r := signedRequest(t, `{"type":"user.created"}`, now)
		r.Header.Set(HeaderSignature, "v1,aW52YWxpZA==")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("stale timestamp", func(t *testing.T) {
		h := newTestHandler(t, newFakeUserStore(), now)
		r := signedRequest(t, `{"type":"user.created"}`, now.Add(-time.Hour))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		h := newTestHandler(t, newFakeUserStore(), now)
		r := signedRequest(t, `{not json`, now)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestHandlerUserCreated(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("provisions the user", func(t *testing.T) {
		store := newFakeUserStore()
		h := newTestHandler(t, store, now)

		payload := `{
			"type": "user.created",
			"data": {
				"id": "user_abc",
				"first_name": "Robin",
				"last_name": "Lee",
				"email_addresses": [{"email_address": "robin@example.com"}]
			}
		}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
		}
		user, ok := store.users["user_abc"]
		if !ok {
			t.Fatal("user was not provisioned")
		}
		if user.Email != "robin@example.com" {
			t.Errorf("email = %q", user.Email)
		}
		if user.FirstName != "Robin" || user.LastName != "Lee" {
			t.Errorf("name = %q %q", user.FirstName, user.LastName)
		}
		if user.Credential == "" {
			t.Error("placeholder credential was not generated")
		}
	})

	t.Run("missing email is refused", func(t *testing.T) {
		store := newFakeUserStore()
		h := newTestHandler(t, store, now)

		payload := `{"type":"user.created","data":{"id":"user_abc","email_addresses":[]}}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if len(store.users) != 0 {
			t.Error("user was provisioned without an email")
		}
	})

	t.Run("store failure surfaces as a server error", func(t *testing.T) {
		store := newFakeUserStore()
		store.createErr = fmt.Errorf("connection reset")
		h := newTestHandler(t, store, now)

		payload := `{"type":"user.created","data":{"id":"user_abc","email_addresses":[{"email_address":"a@b.c"}]}}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

func TestHandlerUserDeleted(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("removes the mirrored user", func(t *testing.T) {
		store := newFakeUserStore()
		store.users["user_abc"] = db.User{ID: "user_abc"}
		h := newTestHandler(t, store, now)

		payload := `{"type":"user.deleted","data":{"id":"user_abc"}}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if _, ok := store.users["user_abc"]; ok {
			t.Error("user still present after delete event")
		}
	})

	t.Run("unknown user surfaces as a server error", func(t *testing.T) {
		store := newFakeUserStore()
		h := newTestHandler(t, store, now)

		payload := `{"type":"user.deleted","data":{"id":"user_never_seen"}}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("missing id is refused", func(t *testing.T) {
		h := newTestHandler(t, newFakeUserStore(), now)

		payload := `{"type":"user.deleted","data":{}}`
		w := httptest.NewRecorder()
		h.ServeHTTP(w, signedRequest(t, payload, now))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestHandlerAcknowledgesUnknownEvents(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	h := newTestHandler(t, newFakeUserStore(), now)

	payload := `{"type":"session.ended","data":{"id":"sess_1"}}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, signedRequest(t, payload, now))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
