package s2n

import (
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
)

func TestConfigMaxSupportedVersionDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, MaxSupportedVersion, cfg.maxSupportedVersion())

	cfg = &Config{MaxSupportedVersion: TLS1_0.Internal()}
	assert.Equal(t, TLS1_0.Internal(), cfg.maxSupportedVersion())
}

func TestConfigLoggerFactoryDefault(t *testing.T) {
	cfg := &Config{}
	factory := cfg.loggerFactory()
	logger := factory.NewLogger("s2n")
	assert.NotNil(t, logger)

	custom := logging.NewDefaultLoggerFactory()
	cfg = &Config{LoggerFactory: custom}
	assert.Equal(t, custom, cfg.loggerFactory())
}
