package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogsHonorsCountAndLevel(t *testing.T) {
	logBuffer = nil
	t.Cleanup(func() { logBuffer = nil })

	addToBuffer("INFO", "first")
	addToBuffer("INFO", "second")
	addToBuffer("WARNING", "third")
	addToBuffer("DEBUG", "fourth")

	// newest first, capped at the requested count
	logs := GetLogs(2, "info")
	assert.Len(t, logs, 2)
	assert.Contains(t, logs[0], "third")
	assert.Contains(t, logs[1], "second")

	// debug entries sit above the requested level
	logs = GetLogs(10, "info")
	assert.Len(t, logs, 3)

	logs = GetLogs(10, "warning")
	assert.Len(t, logs, 1)
	assert.Contains(t, logs[0], "third")
}
