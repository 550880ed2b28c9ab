package model

// Question is a single challenge question with one or more accepted
// answers. Questions are immutable values: loaded at startup (or on an
// explicit reload), never mutated at runtime.
type Question struct {
	ID      string   `json:"id" toml:"id"`
	Prompt  string   `json:"prompt" toml:"prompt"`
	Answers []string `json:"answers" toml:"answers"`
}
