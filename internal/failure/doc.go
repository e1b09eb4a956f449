// Package failure defines the error kinds raised by the OCR and translation
// pipeline stages and maps each kind to the alert category shown to users.
package failure
