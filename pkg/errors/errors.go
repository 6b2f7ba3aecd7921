package errors

import "errors"

var (
	ErrArchiveNotFound = errors.New("archive not found")
	ErrArchiverStart   = errors.New("archiver failed to start")
	ErrStreamCancelled = errors.New("stream cancelled")
	ErrTooManyStreams  = errors.New("too many concurrent streams")

	// ErrClientDisconnected is reported when the response can no longer be
	// written. It is a cancellation: errors.Is(err, ErrStreamCancelled) holds.
	ErrClientDisconnected = &wrapped{msg: "client disconnected", base: ErrStreamCancelled}
)

type wrapped struct {
	msg  string
	base error
}

func (w *wrapped) Error() string { return w.msg }

func (w *wrapped) Unwrap() error { return w.base }

// IsCancellation reports whether err ended a stream because the request went
// away rather than because the archive could not be produced.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrStreamCancelled)
}
