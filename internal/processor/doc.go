// Package processor orchestrates the OCR and text translation pipelines.
// It acquires images, calls the OCR and translation services, merges the
// translated lines back onto their geometry and commits each transition to
// the shared state store as a single replacement. Stage failures become
// alerts (OCR pipeline) or an inline failed status (text pipeline) and never
// escape as panics. A new run supersedes the in-flight run of the same slot.
package processor
