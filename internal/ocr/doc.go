// Package ocr uploads images to the OCR.space parse API and converts the
// word-level overlay into ordered text lines with their geometry.
package ocr
