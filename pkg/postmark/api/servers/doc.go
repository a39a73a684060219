// Package servers contains the operations managing servers.
//
// These operations use the account token.
package servers
