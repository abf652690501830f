package run

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID identifies one analysis run. IDs are UUIDv7 and sort by creation time.
type ID string

// NewID returns a fresh run ID
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// ParseID accepts any UUID, as found in an earlier manifest
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("run id %q: %w", s, err)
	}
	return ID(id.String()), nil
}

func (id ID) String() string { return string(id) }

// Fingerprint is the hex SHA-256 of the JSON encoding of a Parameters value
type Fingerprint string

func fingerprintOf(p Parameters) Fingerprint {
	// struct fields encode in declaration order, so the bytes are stable
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Timestamp is a creation time encoded as RFC3339 in UTC
type Timestamp time.Time

// Now returns the current time as a Timestamp
func Now() Timestamp { return Timestamp(time.Now()) }

// MarshalJSON encodes the timestamp as RFC3339 in UTC
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339))
}

// UnmarshalJSON decodes an RFC3339 timestamp
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}
