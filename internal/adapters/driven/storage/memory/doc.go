// Package memory provides in-memory implementations of driven ports.
// They back tests and one-shot CLI runs that do not need persistence.
package memory
