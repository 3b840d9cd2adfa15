package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainPuzzle = "pageorder/puzzle/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// PuzzleHash computes the content-addressed identity of a puzzle.
// Two inputs with the same rules and updates, in the same order, hash
// identically regardless of the file format they were loaded from.
func PuzzleHash(p Puzzle) (string, error) {
	rules := p.Rules
	if rules == nil {
		rules = []Rule{}
	}
	updates := p.Updates
	if updates == nil {
		updates = []Update{}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"rules":   rules,
		"updates": updates,
	})
	if err != nil {
		return "", fmt.Errorf("PuzzleHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainPuzzle, canonical), nil
}

// MustPuzzleHash is like PuzzleHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustPuzzleHash(p Puzzle) string {
	hash, err := PuzzleHash(p)
	if err != nil {
		panic(err)
	}
	return hash
}
