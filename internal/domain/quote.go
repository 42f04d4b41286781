package domain

import "time"

// Quote is an immutable timestamped log entry attached to a rescue.
type Quote struct {
	Author     string    `json:"author"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	LastAuthor string    `json:"lastAuthor"`
}

// NewQuote builds a quote stamped with the current time.
func NewQuote(author, message string) Quote {
	now := time.Now()
	return Quote{
		Author:     author,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
		LastAuthor: author,
	}
}
