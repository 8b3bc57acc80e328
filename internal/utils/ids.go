package utils

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

var ErrInvalidSlug = errors.New("invalid slug")

// Canonical lowercase-or-uppercase hyphenated form, version 4, RFC 4122 variant.
var uuidV4Pattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsUUIDv4 reports whether s is a hyphenated version 4 UUID
func IsUUIDv4(s string) bool {
	return uuidV4Pattern.MatchString(s)
}

// ParseUUIDv4 parses s, rejecting anything that is not a hyphenated v4 UUID
func ParseUUIDv4(s string) (uuid.UUID, bool) {
	if !IsUUIDv4(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ShortSlug encodes an ID as a base58 share slug
func ShortSlug(id uuid.UUID) string {
	return base58.Encode(id[:])
}

// ParseSlug decodes a share slug produced by ShortSlug
func ParseSlug(slug string) (uuid.UUID, error) {
	raw, err := base58.Decode(slug)
	if err != nil {
		return uuid.Nil, ErrInvalidSlug
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidSlug
	}
	return id, nil
}
