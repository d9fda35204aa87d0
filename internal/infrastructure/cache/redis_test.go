package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvisoryFingerprint(t *testing.T) {
	base := AdvisoryFingerprint("act now", "scam.example", []string{"bank.example"})

	assert.Len(t, base, 64)
	assert.Equal(t, base, AdvisoryFingerprint("act now", "scam.example", []string{"bank.example"}))

	assert.NotEqual(t, base, AdvisoryFingerprint("act later", "scam.example", []string{"bank.example"}))
	assert.NotEqual(t, base, AdvisoryFingerprint("act now", "other.example", []string{"bank.example"}))
	assert.NotEqual(t, base, AdvisoryFingerprint("act now", "scam.example", nil))
}

func TestAdvisoryFingerprintSeparatesFields(t *testing.T) {
	// Field boundaries must not blur: text "ab" + sender "c" is not the
	// same request as text "a" + sender "bc".
	assert.NotEqual(t,
		AdvisoryFingerprint("ab", "c", nil),
		AdvisoryFingerprint("a", "bc", nil),
	)
}
