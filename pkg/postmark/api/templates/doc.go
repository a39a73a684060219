// Package templates contains the operations managing templates.
//
// Operations addressing a single template accept an [api.Ref] that is
// either the numeric template ID or the template alias. These operations
// use the server token.
package templates
