// Package common holds helpers shared by several services.
//
// It detects the current system actor (hostname/username) so that console
// sessions can be attributed in logs.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
