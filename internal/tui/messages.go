package tui

import "github.com/rshade/pagetable/internal/browse"

// pageResultMsg carries the outcome of a page fetch back into Update.
type pageResultMsg struct {
	event browse.Event
}

// toastExpiredMsg hides toast id, unless a newer toast replaced it.
type toastExpiredMsg struct {
	id int
}
