// Package webhooks contains the operations managing webhooks.
//
// These operations use the server token.
package webhooks
