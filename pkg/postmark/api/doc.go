// Package api contains the data shapes shared by the Postmark
// operations implemented in its subpackages.
//
// Each subpackage groups the operations of one section of the API:
//
// - bounces: delivery statistics;
//
// - email: sending single and batch messages, with or without templates;
//
// - servers: server management (needs an account token);
//
// - streams: suppressions management for message streams;
//
// - templates: template management;
//
// - webhooks: webhook management.
package api
