package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultSessionKey is the storage key the storefront has always used.
const DefaultSessionKey = "renova_auth"

// SessionRecord is the durable envelope {user, token}. It is either absent or
// carries both fields.
type SessionRecord struct {
	User  *Identity  `json:"user"`
	Token Credential `json:"token"`
}

// EncodeSessionRecord serializes the pair. Both halves are required and the
// identity must carry an id.
func EncodeSessionRecord(id Identity, cred Credential) ([]byte, error) {
	if cred.Empty() || id.ID == "" {
		return nil, fmt.Errorf("encode session: %w", ErrMalformedRecord)
	}
	return json.Marshal(SessionRecord{User: &id, Token: cred})
}

// DecodeSessionRecord parses raw and rejects partial envelopes.
func DecodeSessionRecord(raw []byte) (Identity, Credential, error) {
	var rec SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Identity{}, "", fmt.Errorf("decode session: %w: %v", ErrMalformedRecord, err)
	}
	if rec.User == nil || rec.Token.Empty() {
		return Identity{}, "", fmt.Errorf("decode session: %w: missing user or token", ErrMalformedRecord)
	}
	if rec.User.ID == "" {
		return Identity{}, "", fmt.Errorf("decode session: %w: missing user id", ErrMalformedRecord)
	}
	return rec.User.Normalized(), rec.Token, nil
}
