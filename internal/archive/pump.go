package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	perrors "photoarchive/pkg/errors"
	"photoarchive/pkg/logger"
)

// ioAnomaly marks a read failure of the archiver output that was not caused
// by cancellation. The stream stops but the request is not failed.
type ioAnomaly struct {
	err error
}

func (e *ioAnomaly) Error() string {
	return fmt.Sprintf("archive output read failed: %v", e.err)
}

func (e *ioAnomaly) Unwrap() error {
	return e.err
}

// pump copies src to dst one chunk at a time, flushing after every chunk so
// the client receives it immediately. Chunks are written in the order they are
// read. dst write errors are reported as ErrClientDisconnected, a done ctx as
// ErrStreamCancelled.
type pump struct {
	src    io.Reader
	dst    io.Writer
	flush  func() error
	buf    []byte
	logger *logger.Logger

	chunks int
	bytes  int64
}

func (p *pump) run(ctx context.Context) error {
	for {
		n, rerr := p.src.Read(p.buf)
		if n > 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", perrors.ErrStreamCancelled, err)
			}
			if err := p.send(p.buf[:n]); err != nil {
				return err
			}
		}

		if rerr == nil {
			continue
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		// a cancelled session closes the pipe under the pending read
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", perrors.ErrStreamCancelled, err)
		}
		return &ioAnomaly{err: rerr}
	}
}

func (p *pump) send(chunk []byte) error {
	if p.chunks == 0 && p.logger.IsDebugEnabled() {
		p.logger.Debug("archive stream started", "mime", mimetype.Detect(chunk).String())
	}

	p.logger.Info("sending archive chunk", "chunk", p.chunks+1, "bytes", len(chunk))

	if _, err := p.dst.Write(chunk); err != nil {
		return fmt.Errorf("%w: %v", perrors.ErrClientDisconnected, err)
	}
	if err := p.flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("%w: %v", perrors.ErrClientDisconnected, err)
	}

	p.chunks++
	p.bytes += int64(len(chunk))
	return nil
}
