// Package testutil holds the assertion helpers shared by the API handler
// tests.
package testutil

import "testing"

// AssertStatusCode fails the test when the response status differs.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError stops the test on an unexpected error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
