// Copyright (c) 2026 PalText. All rights reserved.

// Package objectid generates and validates the 24-character hexadecimal
// identifiers used as primary keys throughout the API.
//
// # Format
//
// An ID is 12 bytes hex-encoded: a 4-byte big-endian Unix timestamp followed
// by 8 random bytes. The timestamp prefix keeps freshly created records
// roughly time-sortable; the random suffix makes collisions negligible.
package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

// pattern matches a 24-character hexadecimal identifier (case-insensitive).
var pattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// New returns a fresh 24-character lowercase hex identifier.
func New() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))

	// rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(raw[4:])

	return hex.EncodeToString(raw[:])
}

// IsValid reports whether s is a well-formed 24-character hex identifier.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}
