package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var adjectives = []string{
	"Vivid", "Muted", "Bold", "Pastel", "Gilded",
	"Inky", "Bright", "Dusky", "Neon", "Silver",
	"Velvet", "Amber", "Crimson", "Cobalt", "Ochre",
}

var nouns = []string{
	"Brush", "Canvas", "Easel", "Palette", "Sketch",
	"Pigment", "Charcoal", "Fresco", "Mural", "Etching",
	"Gouache", "Stencil", "Mosaic", "Pastel", "Quill",
}

var nonUsername = regexp.MustCompile(`[^a-z0-9_]+`)

// GenerateUsername creates a random username in the format "adjective_noun_XXXX"
func GenerateUsername() (string, error) {
	adjIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(adjectives))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random adjective: %w", err)
	}

	nounIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(nouns))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random noun: %w", err)
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}

	return strings.ToLower(fmt.Sprintf("%s_%s_%04d",
		adjectives[adjIdx.Int64()],
		nouns[nounIdx.Int64()],
		suffix.Int64(),
	)), nil
}

// UsernameFromEmail derives a username candidate from the local part of an email
func UsernameFromEmail(email string) string {
	local := strings.ToLower(email)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	local = strings.Trim(nonUsername.ReplaceAllString(local, "_"), "_")
	if len(local) > 40 {
		local = local[:40]
	}
	return local
}
