// Package translation translates text and ordered line arrays through a
// remote LLM service (OpenAI or Gemini). Line translation is all or
// nothing: the result has exactly one entry per input line, in order, or
// the call fails. It also includes a translation cache for batch runs.
package translation
