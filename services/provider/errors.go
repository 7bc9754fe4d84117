package provider

import "fmt"

// Failure reasons the gateway distinguishes. They all cancel the owning
// request the same way; the reason only survives on the audit record.
const (
	ReasonUnconfigured = "unconfigured"
	ReasonStatus       = "status"
	ReasonNetwork      = "network"
	ReasonDecode       = "decode"
)

// ProviderError describes why a provider invocation failed.
type ProviderError struct {
	Reason  string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

func unconfiguredError() *ProviderError {
	return &ProviderError{
		Reason:  ReasonUnconfigured,
		Message: "provider URL not configured",
	}
}

func statusError(code int) *ProviderError {
	return &ProviderError{
		Reason:  ReasonStatus,
		Message: fmt.Sprintf("provider responded with status %d", code),
	}
}

func networkError(err error) *ProviderError {
	return &ProviderError{
		Reason:  ReasonNetwork,
		Message: fmt.Sprintf("provider call failed: %v", err),
	}
}

func decodeError(err error) *ProviderError {
	return &ProviderError{
		Reason:  ReasonDecode,
		Message: fmt.Sprintf("provider response unreadable: %v", err),
	}
}
