package mcp23017

import (
	log "github.com/sirupsen/logrus"
)

// Chip is an unconfigured handle treating the expander as one 16 bit unit.
// Values combine both banks little-endian: bank A is the low byte, bank B the
// high byte. AsOutput or AsInput set the direction of all 16 pins at once.
type Chip struct {
	dev *Device
}

// NewChip binds a 16 bit handle to the device. No bus traffic is issued until
// the handle is configured.
func NewChip(bus I2cBus, addr byte) (*Chip, error) {
	dev, err := NewDevice(bus, addr)
	if err != nil {
		return nil, err
	}
	return &Chip{dev: dev}, nil
}

// AsOutput configures all 16 pins as outputs.
func (c *Chip) AsOutput() (*ChipOutput, error) {
	if err := c.dev.Write16(IODIR, 0x0000); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: configured as 16 bit output", c.dev.addr)
	return &ChipOutput{dev: c.dev}, nil
}

// AsInput configures all 16 pins as inputs.
func (c *Chip) AsInput() (*ChipInput, error) {
	if err := c.dev.Write16(IODIR, 0xFFFF); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: configured as 16 bit input", c.dev.addr)
	return &ChipInput{dev: c.dev}, nil
}

// ChipOutput drives all 16 pins of an output-configured chip.
type ChipOutput struct {
	dev *Device
}

// Write drives all 16 pins: two write transactions, the bank A low byte first.
func (c *ChipOutput) Write(value uint16) error {
	return c.dev.Write16(GPIO, value)
}

// WritePort drives the 8 pins of one bank, leaving the other bank untouched.
func (c *ChipOutput) WritePort(bank Bank, value byte) error {
	return c.dev.Write8(GPIO, bank, value)
}

// WritePin drives a single pin and preserves all others.
func (c *ChipOutput) WritePin(bank Bank, pin byte, value Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	return c.dev.Update8(GPIO, bank, mask, levelBits(value, mask))
}

// Read returns the output latch of both banks, the value the pins are driven
// to by the last write.
func (c *ChipOutput) Read() (uint16, error) {
	return c.dev.Read16(OLAT)
}

// ChipInput reads all 16 pins of an input-configured chip and carries its
// pull-up, polarity and interrupt configuration.
type ChipInput struct {
	dev *Device
}

// Read returns the current level of all 16 pins.
func (c *ChipInput) Read() (uint16, error) {
	return c.dev.Read16(GPIO)
}

// ReadPort returns the current level of the 8 pins of one bank.
func (c *ChipInput) ReadPort(bank Bank) (byte, error) {
	return c.dev.Read8(GPIO, bank)
}

// ReadPin returns the current level of a single pin.
func (c *ChipInput) ReadPin(bank Bank, pin byte) (Level, error) {
	if err := checkPin(pin); err != nil {
		return Low, err
	}
	value, err := c.dev.Read8(GPIO, bank)
	if err != nil {
		return Low, err
	}
	return value&PinMask(pin) != 0, nil
}

// SetPull enables (High) or disables (Low) the internal pull-up of all 16 pins.
func (c *ChipInput) SetPull(pull Level) error {
	var value uint16
	if pull {
		value = 0xFFFF
	}
	if err := c.dev.Write16(GPPU, value); err != nil {
		return err
	}
	log.Debugf("MCP23017 %02x: pull-ups set to %04x", c.dev.addr, value)
	return nil
}

// SetPolarity makes all 16 pins read inverted (High) or plain (Low).
func (c *ChipInput) SetPolarity(inverted Level) error {
	var value uint16
	if inverted {
		value = 0xFFFF
	}
	return c.dev.Write16(IPOL, value)
}

// EnableInterrupt enables interrupt-on-change for one pin.
func (c *ChipInput) EnableInterrupt(bank Bank, pin byte) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	return c.dev.Update8(GPINTEN, bank, mask, mask)
}

// DisableInterrupt disables interrupt-on-change for one pin.
func (c *ChipInput) DisableInterrupt(bank Bank, pin byte) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return c.dev.Update8(GPINTEN, bank, PinMask(pin), 0)
}

// SetInterruptMode selects what a pin is compared against to detect a change.
func (c *ChipInput) SetInterruptMode(bank Bank, pin byte, mode InterruptMode) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	var bits byte
	if mode == InterruptOnDefval {
		bits = mask
	}
	return c.dev.Update8(INTCON, bank, mask, bits)
}

// SetInterruptCompare sets the level a pin is compared against in
// InterruptOnDefval mode. The pin must already be in that mode, otherwise
// ErrInterruptCompare is returned without touching the chip.
func (c *ChipInput) SetInterruptCompare(bank Bank, pin byte, value Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	intcon, err := c.dev.Read8(INTCON, bank)
	if err != nil {
		return err
	}
	if intcon&mask == 0 {
		return ErrInterruptCompare
	}
	return c.dev.Update8(DEFVAL, bank, mask, levelBits(value, mask))
}

// SetInterruptMirror connects (true) or disconnects (false) the INTA and INTB
// pins: when mirrored, an interrupt on either bank raises both.
func (c *ChipInput) SetInterruptMirror(mirror bool) error {
	return setInterruptMirror(c.dev, mirror)
}

// InterruptFlags returns the interrupt flag register of one bank, one bit per
// pin with a pending interrupt.
func (c *ChipInput) InterruptFlags(bank Bank) (byte, error) {
	return c.dev.Read8(INTF, bank)
}

// InterruptedPin returns the pin that caused the pending interrupt on one
// bank. ok is false when no pin or more than one pin is flagged.
func (c *ChipInput) InterruptedPin(bank Bank) (pin byte, ok bool, err error) {
	flags, err := c.dev.Read8(INTF, bank)
	if err != nil {
		return 0, false, err
	}
	pin, ok = interruptedPin(flags)
	return pin, ok, nil
}

// InterruptCapture returns the pin levels of one bank captured at the moment
// the interrupt occurred. Reading it clears the pending interrupt.
func (c *ChipInput) InterruptCapture(bank Bank) (byte, error) {
	return c.dev.Read8(INTCAP, bank)
}

// IOCON is a single register reachable through two addresses, one per bank.
// Both addresses are updated so the result does not depend on that detail.
func setInterruptMirror(d *Device, mirror bool) error {
	var bits byte
	if mirror {
		bits = IOCON_BIT_MIRROR
	}
	if err := d.Update8(IOCON, BankA, IOCON_BIT_MIRROR, bits); err != nil {
		return err
	}
	if err := d.Update8(IOCON, BankB, IOCON_BIT_MIRROR, bits); err != nil {
		return err
	}
	log.Debugf("MCP23017 %02x: interrupt mirror set to %v", d.addr, mirror)
	return nil
}
