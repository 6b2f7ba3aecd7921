// Package archive resolves archive identifiers to directories and streams
// those directories to HTTP clients through an external archiving command.
package archive

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	perrors "photoarchive/pkg/errors"
	"photoarchive/pkg/logger"
	osinterface "photoarchive/pkg/os"
)

const (
	DefaultChunkSize   = 512 * 1024
	DefaultGracePeriod = 1 * time.Second
	DefaultContentType = "application/zip"
)

// DefaultCommand writes a recursive, quiet ZIP of the working directory to
// standard output.
var DefaultCommand = []string{"zip", "-qr", "-", "."}

// Options configures a Streamer. Zero values fall back to the defaults above.
type Options struct {
	Command     []string
	ChunkSize   int
	GracePeriod time.Duration
	ContentType string
	// MaxConcurrent caps simultaneous sessions; zero means unlimited.
	MaxConcurrent int64
	Syscall       osinterface.SyscallInterface
	Logger        *logger.Logger
}

// Result summarizes one streaming session.
type Result struct {
	SessionID   string
	PID         int
	Chunks      int
	Bytes       int64
	Duration    time.Duration
	Termination string
	ExitCode    int
}

// Streamer runs one archiver subprocess per request and relays its output.
type Streamer struct {
	command     []string
	chunkSize   int
	grace       time.Duration
	contentType string
	slots       *semaphore.Weighted
	sys         osinterface.SyscallInterface
	logger      *logger.Logger
}

func NewStreamer(opts Options) *Streamer {
	s := &Streamer{
		command:     append([]string(nil), opts.Command...),
		chunkSize:   opts.ChunkSize,
		grace:       opts.GracePeriod,
		contentType: opts.ContentType,
		sys:         opts.Syscall,
		logger:      opts.Logger,
	}
	if len(s.command) == 0 {
		s.command = append([]string(nil), DefaultCommand...)
	}
	if s.chunkSize <= 0 {
		s.chunkSize = DefaultChunkSize
	}
	if s.grace <= 0 {
		s.grace = DefaultGracePeriod
	}
	if s.contentType == "" {
		s.contentType = DefaultContentType
	}
	if opts.MaxConcurrent > 0 {
		s.slots = semaphore.NewWeighted(opts.MaxConcurrent)
	}
	if s.sys == nil {
		s.sys = &osinterface.DefaultSyscall{}
	}
	if s.logger == nil {
		s.logger = logger.WithField("component", "archive-streamer")
	}
	return s
}

// Stream writes the archive of req.Dir to w.
//
// Headers are only committed once the archiver is running, so a returned
// error wrapping ErrArchiverStart or ErrTooManyStreams leaves w untouched.
// Cancellation of ctx or a failed write ends the stream with an error
// wrapping ErrStreamCancelled. A broken archiver pipe ends it without error.
// The archiver has been reaped whenever Stream returns.
func (s *Streamer) Stream(ctx context.Context, w http.ResponseWriter, req *Request) (*Result, error) {
	result := &Result{SessionID: uuid.NewString(), ExitCode: -1}
	log := s.logger.WithFields("session", result.SessionID, "archive", req.ID)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("%w: %w", perrors.ErrStreamCancelled, err)
	}

	if s.slots != nil {
		if !s.slots.TryAcquire(1) {
			log.Warn("rejecting archive request, too many streams in flight")
			return result, perrors.ErrTooManyStreams
		}
		defer s.slots.Release(1)
	}

	started := time.Now()
	proc, err := startArchiver(s.command, req.Dir, s.grace, s.sys, log)
	if err != nil {
		log.Error("failed to start archiver", "command", s.command, "error", err)
		return result, fmt.Errorf("%w: %w", perrors.ErrArchiverStart, err)
	}
	result.PID = proc.pid()
	log = log.WithField("pid", result.PID)
	log.Debug("archiver started", "dir", req.Dir)

	stop := context.AfterFunc(ctx, proc.closeOutput)

	header := w.Header()
	header.Set("Content-Type", s.contentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": req.Filename()}))
	header.Set("Transfer-Encoding", "chunked")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	p := &pump{
		src:    proc.stdout,
		dst:    w,
		flush:  rc.Flush,
		buf:    make([]byte, s.chunkSize),
		logger: log,
	}
	streamErr := p.run(ctx)
	stop()

	if streamErr == nil {
		result.Termination = proc.finish(s.grace)
	} else {
		result.Termination = proc.terminate(s.grace)
	}
	result.Chunks = p.chunks
	result.Bytes = p.bytes
	result.Duration = time.Since(started)
	result.ExitCode = proc.exitCode()

	fields := []interface{}{
		"chunks", result.Chunks,
		"sent", humanize.Bytes(uint64(result.Bytes)),
		"duration", result.Duration,
		"termination", result.Termination,
	}

	var anomaly *ioAnomaly
	switch {
	case streamErr == nil:
		if proc.waitErr != nil {
			log.Warn("archiver exited with error, archive may be incomplete",
				append(fields, "error", proc.waitErr, "stderr", proc.stderr.String())...)
		} else {
			log.Info("archive sent", fields...)
		}
		return result, nil

	case errors.As(streamErr, &anomaly):
		log.Warn("archive stream aborted", append(fields, "error", streamErr)...)
		return result, nil

	default:
		log.Warn("download was interrupted", append(fields, "error", streamErr)...)
		return result, streamErr
	}
}
