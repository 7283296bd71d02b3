// Package tui prompts autocomplete fields in a terminal. A Session searches
// and toggles through an autocomplete.Service, so the console follows the same
// selection rules as the htmx widget. Prompts go through a PromptDriver; the
// default one is backed by survey.
package tui
