// Package identity models the callers of the fulfillment service.
//
// Authentication belongs to an external identity provider. This package only
// describes what the service needs once a token has been verified:
//   - Role: the single role value carried by a caller, with the permission
//     predicates every use case consults
//   - Caller: the authenticated (identity, role) pair attached to a request
//   - User: the local directory entry used to enumerate agents in reports and
//     to display who handled an order
package identity
