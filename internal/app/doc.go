// Package app wires configuration, services and the processor together
// and implements the lenslate subcommands on top of them.
package app
