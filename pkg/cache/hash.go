package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// hashKey generates a cache key by hashing the components.
// The key format is prefix:sha256(json(parts)). Parts JSON cannot encode,
// such as an infinite chart width, are hashed from their Go syntax
// representation instead, which is deterministic for plain values.
// Callers quote free-text strings first (see quoted): JSON folds invalid
// UTF-8 into U+FFFD, which would let distinct inputs share a key.
func hashKey(prefix string, parts ...interface{}) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", parts))
	}
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// quoted escapes s to ASCII so every distinct byte sequence keeps a
// distinct encoding.
func quoted(s string) string {
	return strconv.QuoteToASCII(s)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
