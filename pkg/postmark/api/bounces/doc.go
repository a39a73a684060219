// Package bounces contains the operations inspecting bounces.
package bounces
