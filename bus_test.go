package mcp23017

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"tinygo.org/x/drivers"
)

type txCall struct {
	addr  uint16
	w     []byte
	reads int
}

// fakeTxBus records Tx calls the way a TinyGo machine.I2C would receive them.
type fakeTxBus struct {
	calls []txCall
	read  byte
	err   error
}

var _ drivers.I2C = (*fakeTxBus)(nil)

func (f *fakeTxBus) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, txCall{addr: addr, w: append([]byte(nil), w...), reads: len(r)})
	for i := range r {
		r[i] = f.read
	}
	return nil
}

func TestWrapTx(t *testing.T) {
	a := assert.New(t)
	tx := new(fakeTxBus)
	dev, err := NewDevice(WrapTx(tx), 0x20)
	a.NoError(err)

	a.NoError(dev.Write8(GPPU, BankB, 0x81))
	a.Equal([]txCall{
		{addr: 0x20, w: []byte{0x0D, 0x81}},
	}, tx.calls)

	tx.calls = nil
	tx.read = 0x42
	value, err := dev.Read8(GPIO, BankA)
	a.NoError(err)
	a.Equal(byte(0x42), value)
	a.Equal([]txCall{
		{addr: 0x20, w: []byte{0x12}, reads: 1},
	}, tx.calls)

	tx.err = errNack
	_, err = dev.Read8(GPIO, BankA)
	a.True(errors.Is(err, errNack))
}

func TestBusError(t *testing.T) {
	a := assert.New(t)
	err := &BusError{Op: "read", Addr: 0x21, Reg: 0x13, Err: errNack}
	a.EqualError(err, "I2C read of device 21 register 13 failed: no acknowledge from device")
	a.Equal(errNack, errors.Unwrap(err))
}

func TestDummyBus(t *testing.T) {
	a := assert.New(t)
	dev, err := NewDevice(DummyBus{}, 0x20)
	a.NoError(err)

	a.NoError(dev.Write16(GPIO, 0xBBAA))
	value, err := dev.Read16(GPIO)
	a.NoError(err)
	a.Equal(uint16(0), value)
}
