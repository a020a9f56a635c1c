package extract

import (
	"context"

	"github.com/jmylchreest/huekit/internal/colour"
)

// Source is what an asynchronous extraction reads: raw bytes when Data is
// set, otherwise a reference for the loader.
type Source struct {
	Ref  string
	Data []byte
}

// Async runs the extraction in a goroutine. The returned channel yields
// exactly one result and is then closed. Callers that lose interest may
// simply stop listening; the channel is buffered so the goroutine never
// blocks.
func (e *Extractor) Async(ctx context.Context, src Source, n int) <-chan []colour.Color {
	ch := make(chan []colour.Color, 1)
	go func() {
		defer close(ch)
		if src.Data != nil {
			ch <- e.FromBytes(ctx, src.Data, n)
			return
		}
		ch <- e.FromRef(ctx, src.Ref, n)
	}()
	return ch
}
