package main

// reviewCompleteMsg carries the outcome of the single review request.
type reviewCompleteMsg struct {
	content string
	err     error
}
