// Package streams contains the operations managing the suppression
// lists of message streams.
//
// These operations use the server token.
package streams
