package handler

import (
	"crypto/sha256"
	"encoding/base64"
)

// pkceChallenge derives the S256 code challenge sent to the provider.
// The verifier itself stays server-side in the flow store.
func pkceChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
