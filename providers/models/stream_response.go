package models

// StreamResponse carries one unit of a streamed chat completion.
// Content holds the next text chunk, Done signals the end of the stream,
// and Err reports a stream-level failure. After Done or Err no further
// values are sent.
type StreamResponse struct {
	Content string
	Done    bool
	Err     error
}
