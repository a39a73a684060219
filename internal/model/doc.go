// Package model contains the interfaces and data structures shared
// by the internal packages and by the public postmark packages.
//
// This package should not contain logic, unless the logic is strictly
// related to its data structures.
//
// - logger.go: definition of an apex/log compatible logger;
//
// - http.go: definition of the HTTP client we use for talking
// to the Postmark API and related constants.
package model
