// Package monitoring carries the process-wide diagnostic logger. Library
// packages report irregular but non-fatal events through Logf so the
// binaries and tests decide where those notices go.
package monitoring

import "log"

// Logf emits one diagnostic notice. It defaults to log.Printf; replace it
// with SetLogger to redirect or silence notices.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger installs f as the notice sink. A nil f installs a no-op sink.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
