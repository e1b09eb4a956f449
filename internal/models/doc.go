// Package models lists the OpenAI models available to an API key and
// marks the chat models usable as translation.openai_model.
package models
