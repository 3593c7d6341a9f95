// Package linuxi2c accesses I2C buses through the Linux i2c-dev interface.
// One Bus holds one open device file, such as /dev/i2c-1, and can talk to
// multiple slave devices on it.
package linuxi2c

import (
	"fmt"
	"os"

	"github.com/Thiapalm/mcp23017"
	"golang.org/x/sys/unix"
)

// From linux/i2c-dev.h
const I2C_SLAVE = 0x0703

var _ mcp23017.I2cBus = (*Bus)(nil)

// Bus is an open i2c-dev device file. It is not safe for concurrent use, wrap
// it in a SequencedBus when multiple goroutines share it.
type Bus struct {
	file *os.File
	addr int // Slave address selected on the file descriptor, -1 initially
}

func Open(device string) (*Bus, error) {
	file, err := os.OpenFile(device, os.O_RDWR, os.ModeCharDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C device %v: %v", device, err)
	}
	return &Bus{file: file, addr: -1}, nil
}

func (b *Bus) Close() error {
	return b.file.Close()
}

func (b *Bus) I2cWrite(addr byte, data ...byte) error {
	if err := b.selectSlave(addr); err != nil {
		return err
	}
	if n, err := b.file.Write(data); err != nil {
		return err
	} else if n != len(data) {
		return fmt.Errorf("short I2C write to %02x: wrote %v of %v byte(s)", addr, n, len(data))
	}
	return nil
}

func (b *Bus) I2cWriteRead(addr byte, out, in []byte) error {
	if err := b.I2cWrite(addr, out...); err != nil {
		return err
	}
	if n, err := b.file.Read(in); err != nil {
		return err
	} else if n != len(in) {
		return fmt.Errorf("short I2C read from %02x: got %v of %v byte(s)", addr, n, len(in))
	}
	return nil
}

// selectSlave issues the I2C_SLAVE ioctl when the target address changed since
// the previous transaction.
func (b *Bus) selectSlave(addr byte) error {
	if int(addr) == b.addr {
		return nil
	}
	if err := unix.IoctlSetInt(int(b.file.Fd()), I2C_SLAVE, int(addr)); err != nil {
		return fmt.Errorf("failed to select I2C slave %02x on %v: %v", addr, b.file.Name(), err)
	}
	b.addr = int(addr)
	return nil
}
