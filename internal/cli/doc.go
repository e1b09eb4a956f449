// Package cli provides command-line interface setup and configuration
// for the lenslate application. It handles flag parsing, command
// creation, configuration management using cobra and viper, and the
// terminal rendering of results and alerts.
package cli
