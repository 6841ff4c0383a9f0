// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Multi-partition writes (document removal, topic moves and deletes,
// backup import) run inside driven.Transactor.WithinTx so they either
// fully apply or leave the store untouched.
package services
