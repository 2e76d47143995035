// Package testutil provides test utilities for RFV, including:
//   - Miniredis helpers for the Redis export cache (miniredis.go)
//   - Synthetic purchase ledgers (fixtures.go)
package testutil
