package mcp23017

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"
)

// I2cBus is the transactional bus capability the driver needs. Implementations
// block the calling goroutine until the transaction completed or failed; the
// driver issues no retries and never caches register contents.
//
// Handles sharing one bus must be serialized by the caller, for example by
// wrapping the transport in a SequencedBus. Note that serializing single
// transactions is not enough to make the multi-transaction sequences of 16 bit
// and read-modify-write operations atomic: per chip, keep one writer at a time.
type I2cBus interface {
	I2cWrite(addr byte, data ...byte) error
	I2cWriteRead(addr byte, out, in []byte) error
}

// BusError is returned for every failed bus transaction. It carries the device
// and register addresses of the failed operation and wraps the error value of
// the transport unchanged.
type BusError struct {
	Op   string // "read" or "write"
	Addr byte   // Device address
	Reg  byte   // Register address
	Err  error  // Error reported by the transport
}

func (e *BusError) Error() string {
	return fmt.Sprintf("I2C %v of device %02x register %02x failed: %v", e.Op, e.Addr, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// WrapTx adapts a tinygo.org/x/drivers bus (such as a TinyGo machine.I2C) to
// the I2cBus interface.
func WrapTx(bus drivers.I2C) I2cBus {
	return txBus{bus: bus}
}

type txBus struct {
	bus drivers.I2C
}

func (t txBus) I2cWrite(addr byte, data ...byte) error {
	return t.bus.Tx(uint16(addr), data, nil)
}

func (t txBus) I2cWriteRead(addr byte, out, in []byte) error {
	return t.bus.Tx(uint16(addr), out, in)
}

// DummyBus discards all writes and reads zeros, logging the traffic instead.
// It stands in for real hardware in dry runs.
type DummyBus struct{}

func (DummyBus) I2cWrite(addr byte, data ...byte) error {
	log.Printf("Dummy I2C write to %02x: %#02v", addr, data)
	return nil
}

func (DummyBus) I2cWriteRead(addr byte, out, in []byte) error {
	log.Printf("Dummy I2C write-read of %02x: wrote %#02v, reading %v byte(s)", addr, out, len(in))
	for i := range in {
		in[i] = 0
	}
	return nil
}
