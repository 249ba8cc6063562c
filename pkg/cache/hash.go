package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Documents and descriptions
// are addressed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:<digest>", where the digest covers the JSON
// encoding of parts. Struct fields are encoded in declaration order, so
// equal option values always give equal keys.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
