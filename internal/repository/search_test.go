package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnyTermQueryMatchesAnyTerm(t *testing.T) {
	assert.Equal(t, "alice | bob", buildAnyTermQuery("alice bob"))
	assert.Equal(t, "alice@example.com", buildAnyTermQuery("alice@example.com"))
}

func TestBuildAnyTermQueryStripsUnsafeCharacters(t *testing.T) {
	assert.Equal(t, "a & b", buildAnyTermQuery("a&b"))
	assert.Equal(t, "", buildAnyTermQuery("  !  "))
	assert.Equal(t, "", buildAnyTermQuery(""))
}
