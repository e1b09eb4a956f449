// Package source obtains a single image as binary data, either from a file
// chosen by the user or from a screen capture. A cancelled selection is not
// an error: Acquire returns a nil asset and a nil error.
package source
