package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	cfg := Config("")
	assert.Equal(t, ApplicationName, cfg.ApplicationName)
	assert.Equal(t, DefaultServer, cfg.ServerAddress)
	assert.Contains(t, cfg.ProfileTypes, pyroscope.ProfileCPU)

	assert.Equal(t, "http://pyro:4040", Config("http://pyro:4040").ServerAddress)
}
