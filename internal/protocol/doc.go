// Package protocol owns the date/time wire contract and parsing primitives.
//
// Ownership boundary:
// - request/response packet layouts
// - big-endian encode/decode
// - field validation entry points
//
// Request packets carry packet type 0x0001 and response packets carry 0x0002.
// Both share the 0x497E magic.
package protocol
