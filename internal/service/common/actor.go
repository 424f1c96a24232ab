//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
)

// Actor identifies the operator driving the timers.
type Actor struct {
	// Hostname is the machine name the console runs on.
	Hostname string
	// Username is the system user running the console.
	Username string
}

// DetectActor gathers host and user information for the audit trail.
func DetectActor() (*Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

// KV returns the actor as key-value pairs for structured logs.
func (a *Actor) KV() []any {
	if a == nil {
		return nil
	}

	return []any{"host", a.Hostname, "user", a.Username}
}
