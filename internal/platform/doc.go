// Package platform holds host integrations that differ per operating
// system. Currently this is the title bar colouring of the terminal window.
package platform
