package mcp23017

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeviceValidatesAddress(t *testing.T) {
	a := assert.New(t)
	bus := new(fakeBus)

	for _, addr := range []byte{0x20, 0x23, 0x27} {
		dev, err := NewDevice(bus, addr)
		a.NoError(err)
		a.Equal(addr, dev.Addr())
	}
	for _, addr := range []byte{0x00, 0x1F, 0x28, 0xFF} {
		dev, err := NewDevice(bus, addr)
		a.Nil(dev)
		a.Equal(ErrInvalidAddress, err)
	}
	a.Empty(bus.ops, "constructing a device must not touch the bus")
}

func TestRead8Write8(t *testing.T) {
	a := assert.New(t)
	bus := new(fakeBus)
	dev, err := NewDevice(bus, 0x24)
	a.NoError(err)

	a.NoError(dev.Write8(GPPU, BankB, 0x81))
	a.Equal(byte(0x81), bus.regs[0x0D])

	bus.regs[0x13] = 0x7E
	value, err := dev.Read8(GPIO, BankB)
	a.NoError(err)
	a.Equal(byte(0x7E), value)

	a.Equal([]busOp{
		opWrite(0x24, 0x0D, 0x81),
		opRead(0x24, 0x13),
	}, bus.ops)
}

func TestRead16LittleEndian(t *testing.T) {
	a := assert.New(t)
	bus := new(fakeBus)
	dev, _ := NewDevice(bus, 0x20)

	bus.regs[GPIO.Address(BankA)] = 0xAA
	bus.regs[GPIO.Address(BankB)] = 0xBB
	value, err := dev.Read16(GPIO)
	a.NoError(err)
	a.Equal(uint16(0xBBAA), value)

	// Two separate transactions, bank A first
	a.Equal([]busOp{
		opRead(0x20, 0x12),
		opRead(0x20, 0x13),
	}, bus.ops)
}

func TestWrite16ByteOrder(t *testing.T) {
	a := assert.New(t)
	bus := new(fakeBus)
	dev, _ := NewDevice(bus, 0x20)

	a.NoError(dev.Write16(GPIO, 0xBBAA))

	// The low byte goes to bank A before the high byte goes to bank B
	a.Equal([]busOp{
		opWrite(0x20, 0x12, 0xAA),
		opWrite(0x20, 0x13, 0xBB),
	}, bus.ops)
	a.Equal(byte(0xAA), bus.regs[GPIO.Address(BankA)])
	a.Equal(byte(0xBB), bus.regs[GPIO.Address(BankB)])
}

func TestUpdate8PreservesUntouchedBits(t *testing.T) {
	a := assert.New(t)

	test := func(initial, mask, value, expected byte) {
		bus := new(fakeBus)
		dev, _ := NewDevice(bus, 0x21)
		bus.regs[GPINTEN.Address(BankA)] = initial

		a.NoError(dev.Update8(GPINTEN, BankA, mask, value))
		a.Equal(expected, bus.regs[GPINTEN.Address(BankA)])
		a.Equal([]busOp{
			opRead(0x21, 0x04),
			opWrite(0x21, 0x04, expected),
		}, bus.ops)
	}

	test(0x00, 0x08, 0x08, 0x08)
	test(0xFF, 0x08, 0x00, 0xF7)
	test(0xA5, 0x0F, 0xFF, 0xAF)
	test(0xA5, 0xF0, 0x00, 0x05)
	test(0x81, 0x42, 0xC3, 0xC3)
	test(0x55, 0x00, 0xFF, 0x55) // empty mask changes nothing, but still writes
}

func TestTransactionErrors(t *testing.T) {
	a := assert.New(t)

	bus := &fakeBus{failAt: 1}
	dev, _ := NewDevice(bus, 0x22)

	_, err := dev.Read8(GPIO, BankA)
	a.Error(err)
	a.True(errors.Is(err, errNack), "the transport error must pass through unchanged")
	var busErr *BusError
	a.True(errors.As(err, &busErr))
	a.Equal("read", busErr.Op)
	a.Equal(byte(0x22), busErr.Addr)
	a.Equal(byte(0x12), busErr.Reg)

	bus = &fakeBus{failAt: 1}
	dev, _ = NewDevice(bus, 0x22)
	err = dev.Write8(IODIR, BankA, 0x00)
	a.True(errors.As(err, &busErr))
	a.Equal("write", busErr.Op)
	a.Empty(bus.ops)

	// A 16 bit write failing on the second transaction leaves the first applied
	bus = &fakeBus{failAt: 2}
	dev, _ = NewDevice(bus, 0x22)
	err = dev.Write16(GPIO, 0xBBAA)
	a.True(errors.Is(err, errNack))
	a.Equal([]busOp{opWrite(0x22, 0x12, 0xAA)}, bus.ops)
	a.Equal(byte(0xAA), bus.regs[GPIO.Address(BankA)])
	a.Equal(byte(0x00), bus.regs[GPIO.Address(BankB)])

	// A failed read aborts an update before anything is written
	bus = &fakeBus{failAt: 1}
	dev, _ = NewDevice(bus, 0x22)
	bus.regs[GPPU.Address(BankB)] = 0x55
	err = dev.Update8(GPPU, BankB, 0x08, 0x08)
	a.True(errors.Is(err, errNack))
	a.Empty(bus.ops)
	a.Equal(byte(0x55), bus.regs[GPPU.Address(BankB)], "register must be unchanged")
}
