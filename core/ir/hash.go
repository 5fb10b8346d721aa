package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// HashBytes computes the SHA-256 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString computes the SHA-256 hash of a string and returns it as a hex string.
func HashString(s string) string {
	return HashBytes([]byte(s))
}

// HashVerse computes the SHA-256 hash of a verse's raw text.
// This is used for change detection between corpus snapshots.
func HashVerse(v *Verse) string {
	return HashString(v.Text)
}

// HashExample computes the SHA-256 hash of an NERExample by
// serializing to JSON. Identical input and configuration always
// produce identical examples, so the hash doubles as an idempotence
// check across runs.
func HashExample(e *NERExample) (string, error) {
	data, err := jsonMarshal(e)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}
