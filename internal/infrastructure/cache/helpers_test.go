package cache

import (
	"testing"

	"github.com/shelfsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func configDisabled() config.RedisConfig {
	return config.RedisConfig{Host: "localhost", Port: 6379}
}

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}
