package mcp23017

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	reqWrite = iota + 1
	reqWriteRead
)

// SequencedBus serializes the transactions of concurrent goroutines through a
// single worker goroutine, so that multiple handles can share one transport.
// Only individual transactions are serialized: the multi-transaction sequences
// of 16 bit and read-modify-write operations still require one writer per
// chip at a time.
type SequencedBus struct {
	bus       I2cBus
	queue     chan *busRequest
	closeOnce sync.Once
}

type busRequest struct {
	typ  int
	addr byte
	out  []byte
	in   []byte
	err  error

	done bool
	wait *sync.Cond
}

func (r *busRequest) init() {
	r.wait = &sync.Cond{L: new(sync.Mutex)}
}

func (r *busRequest) waitDone() {
	r.wait.L.Lock()
	defer r.wait.L.Unlock()
	for !r.done {
		r.wait.Wait()
	}
}

func (r *busRequest) notifyDone() {
	r.wait.L.Lock()
	defer r.wait.L.Unlock()
	r.done = true
	r.wait.Broadcast()
}

// NewSequencedBus wraps a transport and starts the worker goroutine. queueLen
// bounds the number of queued transactions before callers block.
func NewSequencedBus(bus I2cBus, queueLen int) *SequencedBus {
	s := &SequencedBus{
		bus:   bus,
		queue: make(chan *busRequest, queueLen),
	}
	go s.handleRequests()
	return s
}

// Close stops the worker goroutine once all queued transactions finished.
// No transactions may be issued after Close.
func (s *SequencedBus) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
}

func (s *SequencedBus) handleRequests() {
	for req := range s.queue {
		switch req.typ {
		case reqWrite:
			req.err = s.bus.I2cWrite(req.addr, req.out...)
		case reqWriteRead:
			req.err = s.bus.I2cWriteRead(req.addr, req.out, req.in)
		default:
			log.Errorln("Ignoring invalid I2C bus request with type", req.typ)
		}
		req.notifyDone()
	}
}

func (s *SequencedBus) request(req *busRequest) error {
	req.init()
	s.queue <- req
	req.waitDone()
	return req.err
}

func (s *SequencedBus) I2cWrite(addr byte, data ...byte) error {
	return s.request(&busRequest{
		typ:  reqWrite,
		addr: addr,
		out:  data,
	})
}

func (s *SequencedBus) I2cWriteRead(addr byte, out, in []byte) error {
	return s.request(&busRequest{
		typ:  reqWriteRead,
		addr: addr,
		out:  out,
		in:   in,
	})
}
