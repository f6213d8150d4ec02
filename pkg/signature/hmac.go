package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix is accepted in front of the hex digest, as sent by GitHub-style webhooks
const Prefix = "sha256="

// Sign returns the hex sha256 HMAC of payload
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify verifies a sha256 HMAC hex signature against payload and secret
func Verify(secret string, payload []byte, signatureHex string) bool {
	signatureHex = strings.TrimPrefix(strings.TrimSpace(signatureHex), Prefix)
	if secret == "" || signatureHex == "" {
		return false
	}
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signatureHex)))
}
