package mcp23017

// Register identifies one of the chip's logical registers. The constant value
// is the bank A address in the default paired layout (IOCON.BANK = 0), where
// the bank B copy follows at the next address. Default bits all zero, except IODIR.
type Register byte

const (
	IODIR   = Register(0x00) // Direction: 0: output, 1: input
	IPOL    = Register(0x02) // 1: GPIO reflects inverted value of the pin
	GPINTEN = Register(0x04) // 1: enable interrupt-on-change. Pins must also be input.
	DEFVAL  = Register(0x06) // Opposite value on input pin will cause interrupt (if INTCON is set)
	INTCON  = Register(0x08) // For interrupt: 0: pins compared to previous value 1: pins compared to DEFVAL
	IOCON   = Register(0x0A) // Chip configuration, see IOCON_BIT_... (single register, reachable via both banks)
	GPPU    = Register(0x0C) // 1: enable internal pull-up for input pins (100 kOhm)
	INTF    = Register(0x0E) // (read only) interrupt flags. Cleared when INTCAP or GPIO is read.
	INTCAP  = Register(0x10) // (read only) state of pins when interrupt occurs. Remains unchanged until read (or GPIO is read)
	GPIO    = Register(0x12) // Reading reads pin values. Writing modifies OLAT.
	OLAT    = Register(0x14) // Output values ("latches")
)

// Bank selects one of the two 8-bit pin groups of the chip.
type Bank byte

const (
	BankA = Bank(0x00) // Pins GPA0-GPA7, low byte of 16 bit values
	BankB = Bank(0x01) // Pins GPB0-GPB7, high byte of 16 bit values
)

func (b Bank) String() string {
	if b == BankB {
		return "B"
	}
	return "A"
}

// Address returns the register address in the default paired layout
// (IOCON.BANK = 0): registers of both banks interleave, bank A on even addresses.
func (r Register) Address(bank Bank) byte {
	return byte(r) | byte(bank)
}

// BankedAddress returns the register address when the BANK bit in IOCON is
// set: bank A occupies 0x00-0x0A, bank B 0x10-0x1A.
func (r Register) BankedAddress(bank Bank) byte {
	return byte(r)/2 | byte(bank)<<4
}

const (
	_                = byte(1 << iota)
	IOCON_BIT_INTPOL // 1: INT pins active-high 0: INT pins active-low
	IOCON_BIT_ODR    // (overrides INTPOL) 1: INT pins are open-drain 0: active output (INTPOL sets polarity)
	IOCON_BIT_HAEN   // Enable hardware address pins (zero otherwise)
	IOCON_BIT_DISSLW // 0: slew rate control for SDA output enabled 1: disabled
	IOCON_BIT_SEQOP  // 0: sequential operation enabled 1: disabled (address stays after read/write)
	IOCON_BIT_MIRROR // 0: INT pins not mirrored 1: INT pins mirrored (both high if one is high)
	IOCON_BIT_BANK   // 1: registers grouped in banks 0: registers paired
)

const (
	ADDRESS     = byte(0x20) // 0010 0000
	MAX_ADDRESS = byte(0x27) // 0010 0111

	// Values for IODIR registers
	INPUT  = byte(0xFF)
	OUTPUT = byte(0x00)

	NumPins = 8 // Pins per bank
)

// Level is the logic level of a single pin. For pull-up and polarity
// configuration, High means enabled/inverted.
type Level bool

const (
	Low  = Level(false)
	High = Level(true)
)

// InterruptMode selects what an input pin is compared against to decide
// whether a change triggers an interrupt.
type InterruptMode byte

const (
	InterruptOnChange = InterruptMode(0) // Compare to the previous pin value
	InterruptOnDefval = InterruptMode(1) // Compare to the DEFVAL register bit
)

// SlaveAddress returns the device address selected by the three hardware
// address pins A2/A1/A0.
func SlaveAddress(a2, a1, a0 Level) byte {
	addr := ADDRESS
	if a0 {
		addr |= 1 << 0
	}
	if a1 {
		addr |= 1 << 1
	}
	if a2 {
		addr |= 1 << 2
	}
	return addr
}

// PinMask returns the register bit mask for a pin number (0-7).
func PinMask(pin byte) byte {
	return 1 << pin
}

func checkPin(pin byte) error {
	if pin >= NumPins {
		return ErrInvalidPin
	}
	return nil
}

func levelBits(value Level, mask byte) byte {
	if value {
		return mask
	}
	return 0
}

// interruptedPin maps an interrupt flag register value to a pin number. Only
// an unambiguous value with exactly one flag set yields a pin.
func interruptedPin(flags byte) (byte, bool) {
	for pin := byte(0); pin < NumPins; pin++ {
		if flags == PinMask(pin) {
			return pin, true
		}
	}
	return 0, false
}
