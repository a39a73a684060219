// Package email contains the operations sending email messages.
//
// These operations use the server token.
package email
