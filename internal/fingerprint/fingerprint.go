package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Document returns the SHA-256 hex digest of the raw file content.
// Byte-identical uploads always map to the same fingerprint, which makes it
// safe to use as a cache key for parsed resumes.
func Document(fileBytes []byte) string {
	sum := sha256.Sum256(fileBytes)
	return hex.EncodeToString(sum[:])
}

// Screening derives the cache key for a screening result from the document
// fingerprint plus the job context. Title and description go in verbatim:
// any difference in the job text, including whitespace, is a different key.
func Screening(fileHash, jobTitle, jobDescription string) string {
	composite := fmt.Sprintf("%s:%s:%s", fileHash, jobTitle, jobDescription)
	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])
}
