package random

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomString(t *testing.T) {
	s := GetRandomString(12)
	assert.Len(t, s, 12)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{12}$`), s)
	assert.NotEqual(t, s, GetRandomString(12))
}

func TestGetTimestampedName(t *testing.T) {
	name := GetTimestampedName("pet", 9)
	assert.Regexp(t, regexp.MustCompile(`^pet-\d{13}-[a-z0-9]{9}$`), name)
}
