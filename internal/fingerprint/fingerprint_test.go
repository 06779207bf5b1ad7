package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentDeterministic(t *testing.T) {
	data := []byte("resume content")

	first := Document(data)
	second := Document(data)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestDocumentKnownVectors(t *testing.T) {
	// SHA-256 reference vectors.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Document(nil))
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Document([]byte{}))
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		Document([]byte("abc")))
}

func TestDocumentBitDifference(t *testing.T) {
	a := []byte("identical resume bytes")
	b := []byte("identical resume byteS")

	assert.NotEqual(t, Document(a), Document(b))
}

func TestScreeningScopedToDocument(t *testing.T) {
	title := "Backend Engineer"
	desc := "Go, distributed systems"

	d1 := Document([]byte("resume one"))
	d2 := Document([]byte("resume two"))

	assert.NotEqual(t, Screening(d1, title, desc), Screening(d2, title, desc))
}

func TestScreeningDeterministic(t *testing.T) {
	hash := Document([]byte("resume"))

	first := Screening(hash, "Backend Engineer", "Go, distributed systems")
	second := Screening(hash, "Backend Engineer", "Go, distributed systems")

	assert.Equal(t, first, second)
}

func TestScreeningJobTextVerbatim(t *testing.T) {
	hash := Document([]byte("resume"))

	// Trailing whitespace is a different job on purpose.
	assert.NotEqual(t,
		Screening(hash, "Backend Engineer", "Go, distributed systems"),
		Screening(hash, "Backend Engineer", "Go, distributed systems "))

	assert.NotEqual(t,
		Screening(hash, "Backend Engineer", "Go, distributed systems"),
		Screening(hash, "backend engineer", "Go, distributed systems"))
}

func TestScreeningDistinctFromDocument(t *testing.T) {
	hash := Document([]byte("resume"))

	assert.NotEqual(t, hash, Screening(hash, "", ""))
}
