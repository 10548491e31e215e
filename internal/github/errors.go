package github

import "fmt"

// Provider-reported failures and transport failures are distinct variants;
// handlers map them to 4xx and 5xx respectively.

// AuthError means GitHub rejected the credentials (bad OAuth code, missing
// or unusable access token).
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// NetworkError wraps a transport-level failure (DNS, reset, timeout)
// talking to GitHub.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError means a single-repository lookup missed.
type NotFoundError struct {
	Owner string
	Repo  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository %s/%s not found", e.Owner, e.Repo)
}

// FetchError means the repository listing call failed with a non-success
// provider status.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("repository listing failed with status %d", e.Status)
}
