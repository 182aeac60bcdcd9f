// Package kernel provides shared value objects used across the sales domain.
//
// The package includes:
//   - UUID: Validated unique identifier wrapping github.com/google/uuid
//   - Email: Normalized, RFC 5322 validated email address (the customer natural key)
//   - Address: Non-empty postal address line
//
// All value objects are immutable, compare by value, and enforce construction
// through their factory functions; zero values fail Validate().
package kernel
