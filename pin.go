package mcp23017

import (
	log "github.com/sirupsen/logrus"
)

// Pin is an unconfigured handle for a single pin, fixed to one bank and one
// bit at construction. All its operations are masked to that bit and preserve
// the sibling pins sharing the same registers.
type Pin struct {
	dev  *Device
	bank Bank
	pin  byte
}

// NewPin binds a 1 bit handle to one pin of the device. No bus traffic is
// issued until the handle is configured.
func NewPin(bus I2cBus, addr byte, bank Bank, pin byte) (*Pin, error) {
	if err := checkPin(pin); err != nil {
		return nil, err
	}
	dev, err := NewDevice(bus, addr)
	if err != nil {
		return nil, err
	}
	return &Pin{dev: dev, bank: bank, pin: pin}, nil
}

// AsOutput configures the pin as output, preserving the direction of all
// other pins.
func (p *Pin) AsOutput() (*PinOutput, error) {
	mask := PinMask(p.pin)
	if err := p.dev.Update8(IODIR, p.bank, mask, 0); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: pin %v%v configured as output", p.dev.addr, p.bank, p.pin)
	return &PinOutput{dev: p.dev, bank: p.bank, mask: mask}, nil
}

// AsInput configures the pin as input, preserving the direction of all other
// pins.
func (p *Pin) AsInput() (*PinInput, error) {
	mask := PinMask(p.pin)
	if err := p.dev.Update8(IODIR, p.bank, mask, mask); err != nil {
		return nil, err
	}
	log.Debugf("MCP23017 %02x: pin %v%v configured as input", p.dev.addr, p.bank, p.pin)
	return &PinInput{dev: p.dev, bank: p.bank, mask: mask}, nil
}

// PinOutput drives a single output-configured pin.
type PinOutput struct {
	dev  *Device
	bank Bank
	mask byte
}

// Write drives the pin to the given level and preserves all other pins.
func (p *PinOutput) Write(value Level) error {
	return p.dev.Update8(GPIO, p.bank, p.mask, levelBits(value, p.mask))
}

// Read returns the output latch bit of the pin, the level it is driven to by
// the last write.
func (p *PinOutput) Read() (Level, error) {
	value, err := p.dev.Read8(OLAT, p.bank)
	if err != nil {
		return Low, err
	}
	return value&p.mask != 0, nil
}

// PinInput reads a single input-configured pin and carries its pull-up,
// polarity and interrupt configuration.
type PinInput struct {
	dev  *Device
	bank Bank
	mask byte
}

// Read returns the current level of the pin.
func (p *PinInput) Read() (Level, error) {
	value, err := p.dev.Read8(GPIO, p.bank)
	if err != nil {
		return Low, err
	}
	return value&p.mask != 0, nil
}

// SetPull enables (High) or disables (Low) the internal pull-up of the pin,
// preserving the pull-ups of all other pins.
func (p *PinInput) SetPull(pull Level) error {
	return p.dev.Update8(GPPU, p.bank, p.mask, levelBits(pull, p.mask))
}

// SetPolarity makes the pin read inverted (High) or plain (Low).
func (p *PinInput) SetPolarity(inverted Level) error {
	return p.dev.Update8(IPOL, p.bank, p.mask, levelBits(inverted, p.mask))
}

// EnableInterrupt enables interrupt-on-change for the pin.
func (p *PinInput) EnableInterrupt() error {
	return p.dev.Update8(GPINTEN, p.bank, p.mask, p.mask)
}

// DisableInterrupt disables interrupt-on-change for the pin.
func (p *PinInput) DisableInterrupt() error {
	return p.dev.Update8(GPINTEN, p.bank, p.mask, 0)
}

// SetInterruptMode selects what the pin is compared against to detect a
// change.
func (p *PinInput) SetInterruptMode(mode InterruptMode) error {
	var bits byte
	if mode == InterruptOnDefval {
		bits = p.mask
	}
	return p.dev.Update8(INTCON, p.bank, p.mask, bits)
}

// SetInterruptCompare sets the level the pin is compared against in
// InterruptOnDefval mode. The pin must already be in that mode, otherwise
// ErrInterruptCompare is returned without touching the chip.
func (p *PinInput) SetInterruptCompare(value Level) error {
	intcon, err := p.dev.Read8(INTCON, p.bank)
	if err != nil {
		return err
	}
	if intcon&p.mask == 0 {
		return ErrInterruptCompare
	}
	return p.dev.Update8(DEFVAL, p.bank, p.mask, levelBits(value, p.mask))
}

// SetInterruptMirror connects (true) or disconnects (false) the INTA and INTB
// pins of the chip: when mirrored, an interrupt on either bank raises both.
func (p *PinInput) SetInterruptMirror(mirror bool) error {
	return setInterruptMirror(p.dev, mirror)
}

// Interrupted returns whether the pin has a pending interrupt.
func (p *PinInput) Interrupted() (bool, error) {
	flags, err := p.dev.Read8(INTF, p.bank)
	if err != nil {
		return false, err
	}
	return flags&p.mask != 0, nil
}

// InterruptCapture returns the level of the pin captured at the moment the
// interrupt occurred. Reading it clears the pending interrupt of the bank.
func (p *PinInput) InterruptCapture() (Level, error) {
	value, err := p.dev.Read8(INTCAP, p.bank)
	if err != nil {
		return Low, err
	}
	return value&p.mask != 0, nil
}
