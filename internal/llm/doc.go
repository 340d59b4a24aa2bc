// Package llm provides the text generation backends used to write example
// sentences and verb conjugations. OpenAI chat completions and Gemini are
// supported; every backend is wrapped in a circuit breaker.
package llm
