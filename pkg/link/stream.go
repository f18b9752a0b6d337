// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"io"
	"sync"

	"github.com/golang/glog"
)

// DefaultBufferSize is the receive buffer of a StreamTransport. At 1200 baud
// the device sends about 120 bytes per second.
const DefaultBufferSize = 4096

// StreamTransport adapts a blocking connection (serial port, WebSocket) to
// the non-blocking Transport. A reader goroutine drains the connection into a
// bounded buffer; bytes arriving while the buffer is full are dropped, like a
// UART overrun.
type StreamTransport struct {
	rw io.ReadWriteCloser

	mu      sync.Mutex
	pending []byte
	head    int // next unread in pending
	size    int
	dropped uint64
	err     error

	wmu  sync.Mutex
	done chan struct{}
}

// NewStreamTransport starts draining rw. size <= 0 selects DefaultBufferSize.
func NewStreamTransport(rw io.ReadWriteCloser, size int) *StreamTransport {
	if size <= 0 {
		size = DefaultBufferSize
	}
	t := &StreamTransport{
		rw:      rw,
		pending: make([]byte, 0, size),
		size:    size,
		done:    make(chan struct{}),
	}
	go t.readerLoop()
	return t
}

func (t *StreamTransport) readerLoop() {
	defer close(t.done)

	buf := make([]byte, 256)
	for {
		n, err := t.rw.Read(buf)
		if n > 0 {
			if glog.V(3) {
				glog.Infof("rx % X", buf[:n])
			}
			t.mu.Lock()
			for _, b := range buf[:n] {
				if len(t.pending)-t.head >= t.size {
					t.dropped++
					continue
				}
				if len(t.pending) == cap(t.pending) && t.head > 0 {
					t.pending = t.pending[:copy(t.pending, t.pending[t.head:])]
					t.head = 0
				}
				t.pending = append(t.pending, b)
			}
			t.mu.Unlock()
		}
		if err != nil {
			glog.V(1).Infof("link reader stopped: %v", err)
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
			return
		}
	}
}

// Available returns the number of buffered bytes
func (t *StreamTransport) Available() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) - t.head
}

// Recv returns the oldest buffered byte
func (t *StreamTransport) Recv() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.head == len(t.pending) {
		return 0, false
	}
	b := t.pending[t.head]
	t.head++
	if t.head == len(t.pending) {
		t.pending = t.pending[:0]
		t.head = 0
	}
	return b, true
}

// Send writes one byte to the connection
func (t *StreamTransport) Send(b byte) bool {
	return t.SendAll([]byte{b}) == 1
}

// SendAll writes p to the connection in a single write
func (t *StreamTransport) SendAll(p []byte) int {
	if t.Err() != nil {
		return 0
	}
	t.wmu.Lock()
	defer t.wmu.Unlock()
	if glog.V(3) {
		glog.Infof("tx % X", p)
	}
	n, err := t.rw.Write(p)
	if err != nil {
		glog.V(1).Infof("link write failed: %v", err)
	}
	return n
}

// Dropped returns the number of bytes lost to a full buffer
func (t *StreamTransport) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Err returns the error that stopped the reader, nil while it runs
func (t *StreamTransport) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done is closed when the reader goroutine exits
func (t *StreamTransport) Done() <-chan struct{} {
	return t.done
}

// Close closes the connection and waits for the reader to exit
func (t *StreamTransport) Close() error {
	err := t.rw.Close()
	<-t.done
	return err
}
