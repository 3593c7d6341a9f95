// Package mcp23017 drives the MCP23017 16 bit I/O expander over I2C.
//
// The 16 pins can be addressed as one 16 bit chip (NewChip), as two
// independent 8 bit banks (NewPort), or as single pins (NewPin). Every handle
// starts unconfigured and turns into an input or output handle through
// AsInput/AsOutput; only the operations valid for that direction exist on the
// resulting type. The previous handle must be discarded after the call.
package mcp23017

import "errors"

var (
	ErrInvalidAddress = errors.New("MCP23017 device addresses range from 0x20 to 0x27")
	ErrInvalidPin     = errors.New("MCP23017 pin numbers range from 0 to 7")

	// ErrInterruptCompare is returned when an interrupt compare value is set
	// for a pin that is not in InterruptOnDefval mode.
	ErrInterruptCompare = errors.New("pin must be set to InterruptOnDefval before setting a compare value")
)

// Device is the raw register access to one chip: single-byte reads and writes,
// the little-endian 16 bit composites, and the masked update used for all
// bit-level configuration. The typed handles are built on top of it; it can be
// used directly when no direction checking is wanted.
//
// A Device never caches register contents: every read is a bus transaction.
type Device struct {
	bus  I2cBus
	addr byte
}

// NewDevice validates the device address and binds it to the bus. No bus
// traffic is issued.
func NewDevice(bus I2cBus, addr byte) (*Device, error) {
	if addr < ADDRESS || addr > MAX_ADDRESS {
		return nil, ErrInvalidAddress
	}
	return &Device{bus: bus, addr: addr}, nil
}

// Addr returns the device address on the bus.
func (d *Device) Addr() byte {
	return d.addr
}

// Read8 reads the register copy of the given bank.
func (d *Device) Read8(reg Register, bank Bank) (byte, error) {
	regAddr := reg.Address(bank)
	var buf [1]byte
	if err := d.bus.I2cWriteRead(d.addr, []byte{regAddr}, buf[:]); err != nil {
		return 0, &BusError{Op: "read", Addr: d.addr, Reg: regAddr, Err: err}
	}
	return buf[0], nil
}

// Write8 writes the register copy of the given bank.
func (d *Device) Write8(reg Register, bank Bank, value byte) error {
	regAddr := reg.Address(bank)
	if err := d.bus.I2cWrite(d.addr, regAddr, value); err != nil {
		return &BusError{Op: "write", Addr: d.addr, Reg: regAddr, Err: err}
	}
	return nil
}

// Read16 reads both bank copies of a register as one 16 bit value, bank A
// first as the low byte. The two transactions are not atomic.
func (d *Device) Read16(reg Register) (uint16, error) {
	low, err := d.Read8(reg, BankA)
	if err != nil {
		return 0, err
	}
	high, err := d.Read8(reg, BankB)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Write16 writes both bank copies of a register: the low byte goes to bank A
// first, the high byte to bank B second. The two transactions are not atomic.
func (d *Device) Write16(reg Register, value uint16) error {
	if err := d.Write8(reg, BankA, byte(value)); err != nil {
		return err
	}
	return d.Write8(reg, BankB, byte(value>>8))
}

// Update8 sets the masked bits of one register copy to value and preserves
// every bit outside the mask: one read followed by one write. A failed read
// leaves the register untouched, so a failure never applies half an update.
func (d *Device) Update8(reg Register, bank Bank, mask, value byte) error {
	current, err := d.Read8(reg, bank)
	if err != nil {
		return err
	}
	return d.Write8(reg, bank, (current&^mask)|(value&mask))
}
