package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceNeverLeaksSecret(t *testing.T) {
	assert.Equal(t, "set", presence("super-secret-token"))
	assert.Equal(t, "missing", presence(""))
	assert.NotContains(t, presence("super-secret-token"), "secret-token")
}
