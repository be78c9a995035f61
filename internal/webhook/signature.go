// Package webhook receives signed user lifecycle events from the
// identity provider and mirrors them into the users table.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Provider webhook header names (Svix scheme).
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// secretPrefix precedes the base64 portion of a webhook secret.
const secretPrefix = "whsec_"

// timestampTolerance bounds how far a message timestamp may drift from
// now before it is rejected as a replay.
const timestampTolerance = 5 * time.Minute

// Verification errors.
var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

// Verifier checks provider signatures over webhook payloads.
type Verifier struct {
	key []byte
}

// NewVerifier creates a Verifier from the shared webhook secret, with or
// without its "whsec_" prefix.
func NewVerifier(secret string) (*Verifier, error) {
	encoded := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding webhook secret: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Verify checks the signature header against the message id, timestamp
// and raw payload. The provider signs "id.timestamp.payload" with
// HMAC-SHA256 and sends one or more space-separated "v1,<base64>"
// signatures; verification succeeds when any of them matches.
func (v *Verifier) Verify(msgID, timestamp, signatureHeader string, payload []byte, now time.Time) error {
	if err := checkTimestamp(timestamp, now); err != nil {
		return err
	}

	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, candidate := range strings.Fields(signatureHeader) {
		version, encoded, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		sig, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// checkTimestamp rejects timestamps outside the replay tolerance.
func checkTimestamp(timestamp string, now time.Time) error {
	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing webhook timestamp: %w", err)
	}
	at := time.Unix(unix, 0)
	if at.Before(now.Add(-timestampTolerance)) || at.After(now.Add(timestampTolerance)) {
		return ErrStaleTimestamp
	}
	return nil
}
