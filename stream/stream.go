// Package stream holds small generic channel pipeline helpers used by
// the import and analyze paths to move NDJSON records without buffering
// whole files.
package stream

import (
	"context"
	"encoding/json"
	"io"
)

// Slice feeds a slice into a channel.
func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// NDJSON decodes newline-delimited JSON records from a reader.
// The stream ends at EOF or on the first undecodable record; a decoder
// stuck on a syntax error would otherwise re-return it forever.
func NDJSON[T any](ctx context.Context, in io.Reader) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		dec := json.NewDecoder(in)
		for {
			var element T
			if err := dec.Decode(&element); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// Filter passes through elements satisfying the predicate.
func Filter[T any](ctx context.Context, predicate func(T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for element := range in {
			if !predicate(element) {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// Transform applies a function to every element.
func Transform[I, O any](ctx context.Context, transformer func(I) O, in <-chan I) <-chan O {
	out := make(chan O)
	go func() {
		defer close(out)
		for element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- transformer(element):
			}
		}
	}()
	return out
}

// Collect drains a channel into a slice.
func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for element := range in {
		select {
		case <-ctx.Done():
			return out
		default:
			out = append(out, element)
		}
	}
	return out
}

// WriteNDJSON encodes every element from the channel as one JSON line.
// The first write error aborts the drain and is returned.
func WriteNDJSON[T any](ctx context.Context, w io.Writer, in <-chan T) error {
	enc := json.NewEncoder(w)
	for element := range in {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := enc.Encode(element); err != nil {
			return err
		}
	}
	return nil
}
