package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const (
	writerQueueSize   = 1000
	writerFlushPeriod = 2 * time.Second
)

// AsyncFileWriter decouples log writes from disk I/O: lines are queued on a
// channel and drained by a single background goroutine, so emitting a record
// never blocks request handling. When the queue is full the line is dropped
// and counted; the drop total is visible through Dropped.
type AsyncFileWriter struct {
	file    *os.File
	buf     *bufio.Writer
	queue   chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncFileWriter{
		file:  file,
		buf:   bufio.NewWriterSize(file, bufferSize),
		queue: make(chan []byte, writerQueueSize),
		done:  make(chan struct{}),
	}

	aw.wg.Add(1)
	go aw.drain()

	return aw, nil
}

// Write queues p for the background writer. It reports success even when the
// line is dropped: a congested log file must not surface as a write error on
// the request path.
func (aw *AsyncFileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case aw.queue <- line:
	default:
		aw.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped returns how many lines were discarded because the queue was full.
func (aw *AsyncFileWriter) Dropped() int64 {
	return aw.dropped.Load()
}

func (aw *AsyncFileWriter) drain() {
	defer aw.wg.Done()

	flush := time.NewTicker(writerFlushPeriod)
	defer flush.Stop()

	for {
		select {
		case line := <-aw.queue:
			_, _ = aw.buf.Write(line)

		case <-flush.C:
			_ = aw.buf.Flush()

		case <-aw.done:
			for {
				select {
				case line := <-aw.queue:
					_, _ = aw.buf.Write(line)
				default:
					_ = aw.buf.Flush()
					return
				}
			}
		}
	}
}

// Close flushes everything still queued and syncs the file.
func (aw *AsyncFileWriter) Close() error {
	close(aw.done)
	aw.wg.Wait()
	if err := aw.file.Sync(); err != nil {
		_ = aw.file.Close()
		return err
	}
	return aw.file.Close()
}
