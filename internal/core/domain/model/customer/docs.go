// Package customer provides the Customer aggregate for buyer records.
//
// Customers are keyed by their unique email address and created lazily on the
// first sale referencing an email not yet on file. This subsystem never
// deletes customers; contact details change only through the explicit
// customer-edit operation.
package customer
