// Package state holds the shared application state that the pipeline reads
// and replaces: the OCR result slot, the text translation slot, the current
// input text and the language settings. Every write replaces a whole
// snapshot; readers always receive copies.
package state
