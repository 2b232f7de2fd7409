package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "now"}
	assert.Equal(t, "hookgen dev (commit abc, built now)", dev.String())

	tagged := Info{Version: "v1.2.0", CommitHash: "abc", BuildTime: "now"}
	assert.Equal(t, "hookgen v1.2.0 (commit abc, built now)", tagged.String())
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "0123456", Info{CommitHash: "0123456789"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
