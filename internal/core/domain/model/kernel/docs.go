// Package kernel holds the primitives shared by every domain package of the
// fulfillment service:
//   - UUID: the identifier value object for orders and identities
//   - Clock: the source of "now" injected into lifecycle and reporting code
package kernel
