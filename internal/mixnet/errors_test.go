package mixnet

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewMixnetError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewMixnetError(ErrNetworkConnection, "test message", cause)

	if err.Type != ErrNetworkConnection {
		t.Errorf("Expected type %s, got %s", ErrNetworkConnection, err.Type)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message 'test message', got '%s'", err.Message)
	}

	if err.Cause != cause {
		t.Errorf("Expected cause %v, got %v", cause, err.Cause)
	}
}

func TestMixnetErrorError(t *testing.T) {
	// Test without cause
	err := NewMixnetError(ErrNodeNotBonded, "node not bonded", nil)
	expected := "node not bonded"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	// Test with cause
	cause := errors.New("underlying error")
	err = NewMixnetError(ErrNetworkConnection, "network failed", cause)
	expected = "network failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestNewNodeNotBondedError(t *testing.T) {
	identityKey := "7dMjPkbzXk2zgqEeVBDannQYk2BxLPHCqGBkBRhjBHcS"
	err := NewNodeNotBondedError(identityKey)

	if err.Type != ErrNodeNotBonded {
		t.Errorf("Expected type %s, got %s", ErrNodeNotBonded, err.Type)
	}

	if !strings.Contains(err.Message, identityKey) {
		t.Errorf("Expected message to contain key '%s', got '%s'", identityKey, err.Message)
	}
}

func TestNewTimeoutError(t *testing.T) {
	operation := "test operation"
	timeout := 30 * time.Second

	err := NewTimeoutError(operation, timeout)

	if err.Type != ErrTimeout {
		t.Errorf("Expected type %s, got %s", ErrTimeout, err.Type)
	}

	if !strings.Contains(err.Message, operation) {
		t.Errorf("Expected message to contain operation '%s', got '%s'", operation, err.Message)
	}

	if !strings.Contains(err.Message, timeout.String()) {
		t.Errorf("Expected message to contain timeout '%s', got '%s'", timeout.String(), err.Message)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		input    error
		expected ErrorType
	}{
		{nil, ErrorType("")},
		{errors.New("timeout occurred"), ErrTimeout},
		{errors.New("deadline exceeded"), ErrTimeout},
		{errors.New("connection refused"), ErrNetworkConnection},
		{errors.New("no such host"), ErrNetworkConnection},
		{errors.New("node not bonded"), ErrNodeNotBonded},
		{errors.New("node not found"), ErrNodeNotBonded},
		{errors.New("rate limit exceeded"), ErrRateLimited},
		{errors.New("too many requests"), ErrRateLimited},
		{errors.New("unknown error"), ErrNetworkConnection},
	}

	for _, test := range tests {
		result := ClassifyError(test.input)

		if test.input == nil {
			if result != nil {
				t.Errorf("Expected nil for nil input, got %v", result)
			}
			continue
		}

		if result.Type != test.expected {
			t.Errorf("For error '%s', expected type %s, got %s", test.input.Error(), test.expected, result.Type)
		}
	}
}

func TestClassifyNetError(t *testing.T) {
	// Create a mock net.Error that times out
	netErr := &mockNetError{timeout: true}

	result := ClassifyError(netErr)
	if result.Type != ErrTimeout {
		t.Errorf("Expected timeout error for net.Error with timeout, got %s", result.Type)
	}
}

func TestClassifyErrorPassesThroughTypedErrors(t *testing.T) {
	original := NewNodeNotBondedError("somekey")
	result := ClassifyError(original)

	if result != original {
		t.Error("Expected typed errors to pass through unchanged")
	}
}

func TestIsRetryable(t *testing.T) {
	retryableTypes := []ErrorType{
		ErrNetworkConnection,
		ErrNodeUnavailable,
		ErrTimeout,
		ErrRateLimited,
	}

	nonRetryableTypes := []ErrorType{
		ErrNodeNotBonded,
		ErrInvalidIdentityKey,
		ErrSimulationRejected,
		ErrTransactionFailed,
	}

	for _, errType := range retryableTypes {
		err := &MixnetError{Type: errType}
		if !err.IsRetryable() {
			t.Errorf("Expected error type %s to be retryable", errType)
		}
	}

	for _, errType := range nonRetryableTypes {
		err := &MixnetError{Type: errType}
		if err.IsRetryable() {
			t.Errorf("Expected error type %s to not be retryable", errType)
		}
	}
}

func TestIsNotBonded(t *testing.T) {
	if !IsNotBonded(NewNodeNotBondedError("key")) {
		t.Error("Expected not-bonded error to be recognised")
	}

	if IsNotBonded(NewNetworkError("connection failed", nil)) {
		t.Error("Transport failure must not count as not-bonded")
	}

	if IsNotBonded(errors.New("plain error")) {
		t.Error("Untyped errors must not count as not-bonded")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrNetworkConnection, "Network connection failed"},
		{ErrNodeNotBonded, "not currently bonded"},
		{ErrInvalidIdentityKey, "Invalid node identity key"},
		{ErrSimulationRejected, "rejected the fee simulation"},
		{ErrTransactionFailed, "Transaction failed to process"},
		{ErrNodeUnavailable, "temporarily unavailable"},
		{ErrRateLimited, "Too many requests"},
		{ErrTimeout, "Request timed out"},
		{ErrorType("unknown"), "An unexpected error occurred"},
	}

	for _, test := range tests {
		err := &MixnetError{Type: test.errType}
		message := err.UserMessage()

		if !strings.Contains(message, test.expected) {
			t.Errorf("For error type %s, expected message to contain '%s', got '%s'", test.errType, test.expected, message)
		}
	}
}

// Mock net.Error for testing
type mockNetError struct {
	timeout bool
}

func (e *mockNetError) Error() string {
	return "mock network error"
}

func (e *mockNetError) Timeout() bool {
	return e.timeout
}

func (e *mockNetError) Temporary() bool {
	return false
}
