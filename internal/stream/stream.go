// Package stream delivers briefing text as an ordered, cancellable sequence
// of token-batch chunks. The same chunk sequence backs both incremental
// in-process rendering and the HTTP event stream.
package stream

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// Defaults for the typing-effect cadence.
const (
	DefaultBatchSize = 3
	DefaultInterval  = 30 * time.Millisecond
)

// Chunk is one delivery unit. The final chunk of a completed stream has
// Done set and carries no text.
type Chunk struct {
	Text string
	Done bool
}

// Streamer splits text into tokens and emits them in fixed-size batches at
// a fixed interval.
type Streamer struct {
	BatchSize int
	Interval  time.Duration
}

// New returns a Streamer with the default batch size and interval.
func New() *Streamer {
	return &Streamer{BatchSize: DefaultBatchSize, Interval: DefaultInterval}
}

// Tokenize splits text so that concatenating the tokens reproduces it
// exactly: a boundary falls after every whitespace character and before
// every newline, so trailing whitespace stays attached to the preceding
// token and each newline is a token of its own.
func Tokenize(text string) []string {
	runes := []rune(text)
	var tokens []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsSpace(runes[i-1]) || runes[i] == '\n' {
			tokens = append(tokens, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}

// Stream emits the text on the returned channel, batch by batch, ending
// with a terminal Done chunk. Cancelling the context stops scheduling
// further batches; the channel is closed either way.
func (s *Streamer) Stream(ctx context.Context, text string) <-chan Chunk {
	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)

		tokens := Tokenize(text)
		for start := 0; start < len(tokens); start += batchSize {
			if start > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(interval):
				}
			}

			end := min(start+batchSize, len(tokens))
			select {
			case out <- Chunk{Text: strings.Join(tokens[start:end], "")}:
			case <-ctx.Done():
				return
			}
		}

		select {
		case out <- Chunk{Done: true}:
		case <-ctx.Done():
		}
	}()
	return out
}
