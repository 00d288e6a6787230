// Package preflight validates the environment before a run touches the network.
package preflight
