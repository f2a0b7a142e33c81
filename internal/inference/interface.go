// Package inference declares the model collaborators that generate and translate transcripts.
package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Transcriber describes a rendered page in the requested language.
type Transcriber interface {
	Transcribe(ctx context.Context, image []byte, language string) (string, error)
}

// Translator rewrites a transcript from one language into another.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// Model is a chat model able to serve both routes.
type Model interface {
	Transcriber
	Translator
	Name() string
	Close() error
}
