package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_dGhpcyBpcyBhIHRlc3Qgc2VjcmV0IGtleQ=="

// sign produces a valid "v1,<base64>" signature the way the provider does.
func sign(t *testing.T, secret, msgID, timestamp string, payload []byte) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(secret[len("whsec_"):])
	if err != nil {
		t.Fatalf("decoding test secret: %v", err)
	}
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	timestamp := fmt.Sprintf("%d", now.Unix())
	payload := []byte(`{"type":"user.created"}`)
	msgID := "msg_123"

	verifier, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier() error: %v", err)
	}

	valid := sign(t, testSecret, msgID, timestamp, payload)

	t.Run("valid signature", func(t *testing.T) {
		if err := verifier.Verify(msgID, timestamp, valid, payload, now); err != nil {
			t.Errorf("Verify() error: %v", err)
		}
	})

	t.Run("valid signature among invalid candidates", func(t *testing.T) {
		header := "v1,aW52YWxpZA== " + valid
		if err := verifier.Verify(msgID, timestamp, header, payload, now); err != nil {
			t.Errorf("Verify() error: %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		err := verifier.Verify(msgID, timestamp, valid, []byte(`{"type":"user.deleted"}`), now)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
		}
	})

	t.Run("wrong message id", func(t *testing.T) {
		err := verifier.Verify("msg_456", timestamp, valid, payload, now)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
		}
	})

	t.Run("unknown signature version", func(t *testing.T) {
		header := "v2," + valid[len("v1,"):]
		err := verifier.Verify(msgID, timestamp, header, payload, now)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
		}
	})

	t.Run("timestamp too old", func(t *testing.T) {
		stale := fmt.Sprintf("%d", now.Add(-10*time.Minute).Unix())
		header := sign(t, testSecret, msgID, stale, payload)
		err := verifier.Verify(msgID, stale, header, payload, now)
		if !errors.Is(err, ErrStaleTimestamp) {
			t.Errorf("Verify() error = %v, want ErrStaleTimestamp", err)
		}
	})

	t.Run("timestamp too far in the future", func(t *testing.T) {
		future := fmt.Sprintf("%d", now.Add(10*time.Minute).Unix())
		header := sign(t, testSecret, msgID, future, payload)
		err := verifier.Verify(msgID, future, header, payload, now)
		if !errors.Is(err, ErrStaleTimestamp) {
			t.Errorf("Verify() error = %v, want ErrStaleTimestamp", err)
		}
	})

	t.Run("garbage timestamp", func(t *testing.T) {
		if err := verifier.Verify(msgID, "not-a-number", valid, payload, now); err == nil {
			t.Error("Verify() accepted a non-numeric timestamp")
		}
	})
}

func TestNewVerifier(t *testing.T) {
	t.Run("secret without prefix", func(t *testing.T) {
		if _, err := NewVerifier("dGhpcyBpcyBhIHRlc3Qgc2VjcmV0IGtleQ=="); err != nil {
			t.Errorf("NewVerifier() error: %v", err)
		}
	})

	t.Run("invalid base64", func(t *testing.T) {
		if _, err := NewVerifier("whsec_!!!not-base64!!!"); err == nil {
			t.Error("NewVerifier() accepted invalid base64")
		}
	})
}
