// Package openai implements the ai service interfaces on top of
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
package openai
