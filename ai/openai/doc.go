// Package openai implements the ai interfaces against OpenAI-compatible
// embedding APIs via langchaingo.
package openai
