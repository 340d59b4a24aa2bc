// Package models lists the OpenAI models usable for sentence and
// conjugation generation (chat) and for speech synthesis (TTS).
package models
