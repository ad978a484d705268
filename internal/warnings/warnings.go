// Package warnings collects non-fatal findings raised while planning a
// migration. Warnings never abort a run; the command layer renders them
// after execution.
package warnings

import "fmt"

// Warning is a single non-fatal finding.
type Warning struct {
	Message string
}

// String returns the warning message.
func (w Warning) String() string {
	return w.Message
}

// Collector accumulates warnings during planning. The zero value is ready to
// use; a nil Collector silently discards warnings so pure helpers can run
// without one.
type Collector struct {
	warnings []Warning
}

// Addf records a formatted warning.
func (c *Collector) Addf(format string, args ...any) {
	if c == nil {
		return
	}
	c.warnings = append(c.warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

// All returns the collected warnings in the order they were raised.
func (c *Collector) All() []Warning {
	if c == nil {
		return nil
	}
	return c.warnings
}
