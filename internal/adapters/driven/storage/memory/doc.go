// Package memory provides in-memory implementations of the driven storage
// ports. They back service tests and the --in-memory CLI mode; nothing is
// persisted.
package memory
