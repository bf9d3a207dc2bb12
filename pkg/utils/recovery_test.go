package utils

import (
	"testing"

	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
	"go.uber.org/zap/zaptest"
)

// setupTestLogger sets up a test logger and returns a function to restore the original logger
func setupTestLogger(t *testing.T) func() {
	testLogger := zaptest.NewLogger(t)
	originalLogger := logger.Log
	logger.Log = testLogger
	return func() {
		logger.Log = originalLogger
	}
}

func TestSafeGo(t *testing.T) {
	cleanup := setupTestLogger(t)
	defer cleanup()

	// Test case 1: Function runs without panic
	successChan := make(chan bool, 1)
	SafeGo(func() {
		successChan <- true
	}, nil)

	if success := <-successChan; !success {
		t.Error("Expected function to execute successfully")
	}

	// Test case 2: Function panics and is recovered
	recoveredChan := make(chan interface{}, 1)

	SafeGo(func() {
		panic("test panic")
	}, func(r interface{}, stack []byte) {
		recoveredChan <- r
	})

	if recovered := <-recoveredChan; recovered != "test panic" {
		t.Errorf("Expected panic to be recovered with 'test panic', got %v", recovered)
	}
}
