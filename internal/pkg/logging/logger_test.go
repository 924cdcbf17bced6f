package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"ordercore/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, "prod", "info")

	logger.Info("Order placed", "order_number", "ORD-20260314-AB12CD34")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Order placed", entry["msg"])
	assert.Equal(t, "ordercore", entry["service"])
	assert.Equal(t, "ORD-20260314-AB12CD34", entry["order_number"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"error", false, false},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewLogger(&buf, "dev", tt.level)

			logger.Debug("debug line")
			logger.Info("info line")

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info line")))
		})
	}
}
