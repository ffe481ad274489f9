package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is the entropy in one session token. 32 bytes keeps tokens
// unguessable over the few hours an admin session lives.
const tokenBytes = 32

// RandomTokenGenerator mints the opaque values stored in the admin session
// cookie. Tokens carry no claims; the session store is the source of truth.
type RandomTokenGenerator struct {
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Size
	if size <= 0 {
		size = tokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: session token: %w", err)
	}
	// Raw URL encoding keeps the value cookie-safe without padding.
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
