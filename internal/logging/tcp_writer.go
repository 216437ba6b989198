package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	defaultDialTimeout   = 2 * time.Second
	defaultWriteTimeout  = time.Second
	defaultRetryInterval = 5 * time.Second
)

// TCPWriter mirrors log lines to a TCP log collector (Logstash or similar)
// without ever blocking the request path: while the collector is down,
// writes are dropped and reconnects are attempted after a cool-down.
type TCPWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

// NewTCPWriter returns a collector writer safe for concurrent use.
func NewTCPWriter(addr string) (*TCPWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty collector address")
	}
	return &TCPWriter{
		addr:          addr,
		dialTimeout:   defaultDialTimeout,
		writeTimeout:  defaultWriteTimeout,
		retryInterval: defaultRetryInterval,
	}, nil
}

// Write implements io.Writer. It always reports success to the caller;
// delivery is best effort.
func (w *TCPWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if !w.connectLocked() {
		return len(p), nil
	}

	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(line); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(w.retryInterval)
	}
	return len(p), nil
}

func (w *TCPWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *TCPWriter) connectLocked() bool {
	if w.conn != nil {
		return true
	}
	if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
		return false
	}
	conn, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.nextRetry = time.Now().Add(w.retryInterval)
		return false
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return true
}
