// Package transport owns the UDP sockets for the date/time protocol.
//
// Ownership boundary:
// - client single-exchange with deadline
// - server socket binding set (one socket per language)
// - server dispatch loop
//
// Server processing is serialized: per-socket readers only forward raw
// datagrams, and one dispatcher validates, renders, encodes and replies.
package transport
