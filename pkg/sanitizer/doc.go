// Package sanitizer normalizes user-supplied values before validation and
// lookups.
//
// All functions are idempotent and never return errors.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trim surrounding whitespace only, case is preserved
//   - Price buckets: trim and collapse whitespace
package sanitizer
