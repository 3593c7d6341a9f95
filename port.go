package mcp23017

import (
	log "github.com/sirupsen/logrus"
)

// Port is an unconfigured handle for the 8 pins of a single bank. Two Port
// handles on different banks of the same chip are independent, but sharing one
// bus still requires serialized access (see I2cBus).
type Port struct {
	dev  *Device
	bank Bank
}

// NewPort binds an 8 bit handle to one bank of the device. No bus traffic is
// issued until the handle is configured.
func NewPort(bus I2cBus, addr byte, bank Bank) (*Port, error) {
	dev, err := NewDevice(bus, addr)
	if err != nil {
		return nil, err
	}
	return &Port{dev: dev, bank: bank}, nil
}

// AsOutput configures all pins of the bank as outputs with a single register
// write.
func (p *Port) AsOutput() (*PortOutput, error) {
	if err := p.dev.Write8(IODIR, p.bank, OUTPUT); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: bank %v configured as output", p.dev.addr, p.bank)
	return &PortOutput{dev: p.dev, bank: p.bank}, nil
}

// AsInput configures all pins of the bank as inputs with a single register
// write.
func (p *Port) AsInput() (*PortInput, error) {
	if err := p.dev.Write8(IODIR, p.bank, INPUT); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: bank %v configured as input", p.dev.addr, p.bank)
	return &PortInput{dev: p.dev, bank: p.bank}, nil
}

// PortOutput drives the 8 pins of an output-configured bank.
type PortOutput struct {
	dev  *Device
	bank Bank
}

// Write drives all 8 pins of the bank in a single write transaction. The
// other bank is not touched.
func (p *PortOutput) Write(value byte) error {
	return p.dev.Write8(GPIO, p.bank, value)
}

// WritePin drives a single pin and preserves all others.
func (p *PortOutput) WritePin(pin byte, value Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	return p.dev.Update8(GPIO, p.bank, mask, levelBits(value, mask))
}

// Read returns the output latch of the bank, the value the pins are driven to
// by the last write.
func (p *PortOutput) Read() (byte, error) {
	return p.dev.Read8(OLAT, p.bank)
}

// PortInput reads the 8 pins of an input-configured bank and carries its
// pull-up, polarity and interrupt configuration.
type PortInput struct {
	dev  *Device
	bank Bank
}

// Read returns the current level of all 8 pins of the bank.
func (p *PortInput) Read() (byte, error) {
	return p.dev.Read8(GPIO, p.bank)
}

// ReadPin returns the current level of a single pin.
func (p *PortInput) ReadPin(pin byte) (Level, error) {
	if err := checkPin(pin); err != nil {
		return Low, err
	}
	value, err := p.dev.Read8(GPIO, p.bank)
	if err != nil {
		return Low, err
	}
	return value&PinMask(pin) != 0, nil
}

// SetPull enables (High) or disables (Low) the internal pull-up of all 8 pins
// of the bank.
func (p *PortInput) SetPull(pull Level) error {
	if err := p.dev.Write8(GPPU, p.bank, levelBits(pull, 0xFF)); err != nil {
		return err
	}
	log.Debugf("MCP23017 %02x: bank %v pull-ups set to %v", p.dev.addr, p.bank, pull)
	return nil
}

// SetPinPull enables or disables the pull-up of a single pin and preserves
// the others.
func (p *PortInput) SetPinPull(pin byte, pull Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	return p.dev.Update8(GPPU, p.bank, mask, levelBits(pull, mask))
}

// SetPolarity makes all 8 pins of the bank read inverted (High) or plain (Low).
func (p *PortInput) SetPolarity(inverted Level) error {
	return p.dev.Write8(IPOL, p.bank, levelBits(inverted, 0xFF))
}

// EnableInterrupt enables interrupt-on-change for one pin of the bank.
func (p *PortInput) EnableInterrupt(pin byte) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	return p.dev.Update8(GPINTEN, p.bank, mask, mask)
}

// DisableInterrupt disables interrupt-on-change for one pin of the bank.
func (p *PortInput) DisableInterrupt(pin byte) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	return p.dev.Update8(GPINTEN, p.bank, PinMask(pin), 0)
}

// SetInterruptMode selects what a pin is compared against to detect a change.
func (p *PortInput) SetInterruptMode(pin byte, mode InterruptMode) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	var bits byte
	if mode == InterruptOnDefval {
		bits = mask
	}
	return p.dev.Update8(INTCON, p.bank, mask, bits)
}

// SetInterruptCompare sets the level a pin is compared against in
// InterruptOnDefval mode. The pin must already be in that mode, otherwise
// ErrInterruptCompare is returned without touching the chip.
func (p *PortInput) SetInterruptCompare(pin byte, value Level) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	mask := PinMask(pin)
	intcon, err := p.dev.Read8(INTCON, p.bank)
	if err != nil {
		return err
	}
	if intcon&mask == 0 {
		return ErrInterruptCompare
	}
	return p.dev.Update8(DEFVAL, p.bank, mask, levelBits(value, mask))
}

// SetInterruptMirror connects (true) or disconnects (false) the INTA and INTB
// pins of the chip: when mirrored, an interrupt on either bank raises both.
func (p *PortInput) SetInterruptMirror(mirror bool) error {
	return setInterruptMirror(p.dev, mirror)
}

// InterruptFlags returns the interrupt flag register of the bank, one bit per
// pin with a pending interrupt.
func (p *PortInput) InterruptFlags() (byte, error) {
	return p.dev.Read8(INTF, p.bank)
}

// InterruptedPin returns the pin that caused the pending interrupt on the
// bank. ok is false when no pin or more than one pin is flagged.
func (p *PortInput) InterruptedPin() (pin byte, ok bool, err error) {
	flags, err := p.dev.Read8(INTF, p.bank)
	if err != nil {
		return 0, false, err
	}
	pin, ok = interruptedPin(flags)
	return pin, ok, nil
}

// InterruptCapture returns the pin levels of the bank captured at the moment
// the interrupt occurred. Reading it clears the pending interrupt.
func (p *PortInput) InterruptCapture() (byte, error) {
	return p.dev.Read8(INTCAP, p.bank)
}
