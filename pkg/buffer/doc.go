// Package buffer provides ResponseBuffer, the growable byte buffer that
// receives streamed HTTP response bodies.
//
// A ResponseBuffer keeps its written length and its capacity apart and only
// reallocates when a write would not fit. The byte after the written content
// is always 0, so the content can be handed to code expecting a NUL-terminated
// string. An optional maximum size turns oversized bodies into an
// ErrResourceExhausted error instead of unbounded growth.
//
// Ownership is explicit: whoever holds the buffer calls Release when done.
// Producers that fail midway release the buffer themselves and never hand a
// partially written buffer to their caller.
//
//	buf := buffer.NewResponseBuffer(buffer.WithMaxSize(1 << 20))
//	if _, err := io.Copy(buf, resp.Body); err != nil {
//		buf.Release()
//		return nil, err
//	}
//	return buf, nil
//
// Statistics are atomic and may be shared between buffers with WithStatistics.
package buffer
