package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionDefaultsToDev(t *testing.T) {
	assert.Equal(t, "dev", Version())
}

func TestVersionOverride(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })
	version = "v1.0.0"
	assert.Equal(t, "v1.0.0", Version())
}
