// Package domain defines the types and ports of the query service
package domain

import (
	"context"

	"vesselq/internal/core/answer"
	"vesselq/internal/core/queryparse"
)

// Request is the body of POST /query
type Request struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// Reply is the parsed question, the structured answer and its rendering
type Reply struct {
	Parsed queryparse.ParsedQuery `json:"parsed"`
	Answer answer.Answer          `json:"answer"`
	Text   string                 `json:"text"`
}

// Asker answers free text questions
type Asker interface {
	Ask(ctx context.Context, text string) (Reply, error)
}

// Ports is the port set the query module exposes
type Ports struct {
	Asker Asker
}
