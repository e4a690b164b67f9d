package mixnet

import (
	"fmt"
	"net"
	"strings"
	"time"
)

func NewMixnetError(errType ErrorType, message string, cause error) *MixnetError {
	return &MixnetError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *MixnetError {
	return NewMixnetError(ErrNetworkConnection, message, cause)
}

func NewNodeNotBondedError(identityKey string) *MixnetError {
	return NewMixnetError(ErrNodeNotBonded,
		fmt.Sprintf("no bonded node with identity key %s", identityKey), nil)
}

func NewInvalidIdentityKeyError(identityKey string) *MixnetError {
	return NewMixnetError(ErrInvalidIdentityKey,
		fmt.Sprintf("invalid identity key: %s", identityKey), nil)
}

func NewSimulationRejectedError(reason string, cause error) *MixnetError {
	return NewMixnetError(ErrSimulationRejected,
		fmt.Sprintf("fee simulation rejected: %s", reason), cause)
}

func NewTimeoutError(operation string, timeout time.Duration) *MixnetError {
	return NewMixnetError(ErrTimeout,
		fmt.Sprintf("operation %s timed out after %v", operation, timeout), nil)
}

func NewNodeUnavailableError(apiURL string, cause error) *MixnetError {
	return NewMixnetError(ErrNodeUnavailable,
		fmt.Sprintf("gateway unavailable: %s", apiURL), cause)
}

func NewRateLimitedError(retryAfter time.Duration) *MixnetError {
	return NewMixnetError(ErrRateLimited,
		fmt.Sprintf("rate limited, retry after %v", retryAfter), nil)
}

func NewTransactionFailedError(txHash string, reason string) *MixnetError {
	return NewMixnetError(ErrTransactionFailed,
		fmt.Sprintf("transaction %s failed: %s", txHash, reason), nil)
}

func ClassifyError(err error) *MixnetError {
	if err == nil {
		return nil
	}

	if mixnetErr, ok := err.(*MixnetError); ok {
		return mixnetErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewTimeoutError("network request", 30*time.Second)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	case strings.Contains(errStr, "not bonded") || strings.Contains(errStr, "not found"):
		return NewMixnetError(ErrNodeNotBonded, "node not currently bonded", err)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests"):
		return NewRateLimitedError(time.Minute)
	default:
		if netErr, ok := err.(net.Error); ok {
			if netErr.Timeout() {
				return NewTimeoutError("network operation", 30*time.Second)
			}
		}
		return NewNetworkError("unknown network error", err)
	}
}

func (e *MixnetError) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrNodeUnavailable, ErrTimeout, ErrRateLimited:
		return true
	default:
		return false
	}
}

// IsNotBonded reports whether err means a well-formed key with no bonded
// node behind it, as opposed to a transport failure.
func IsNotBonded(err error) bool {
	if mixnetErr, ok := err.(*MixnetError); ok {
		return mixnetErr.Type == ErrNodeNotBonded
	}
	return false
}

func (e *MixnetError) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrNodeNotBonded:
		return "Node is not currently bonded."
	case ErrInvalidIdentityKey:
		return "Invalid node identity key."
	case ErrSimulationRejected:
		return "The network rejected the fee simulation."
	case ErrTransactionFailed:
		return "Transaction failed to process."
	case ErrNodeUnavailable:
		return "The wallet gateway is temporarily unavailable."
	case ErrRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case ErrTimeout:
		return "Request timed out. Please try again."
	default:
		return "An unexpected error occurred."
	}
}
