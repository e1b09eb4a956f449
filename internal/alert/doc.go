// Package alert provides the decoupled notification channel the pipeline
// uses to report failures. Alerts carry a symbolic key; turning the key
// into localized text is left to listeners.
package alert
