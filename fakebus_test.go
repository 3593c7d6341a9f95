package mcp23017

import "errors"

var errNack = errors.New("no acknowledge from device")

// busOp is one bus transaction recorded by the fake bus.
type busOp struct {
	op   string // "write" or "read"
	addr byte
	data []byte // write: register address and payload. read: the addressed register
	n    int    // read: number of bytes returned
}

func opWrite(addr byte, data ...byte) busOp {
	return busOp{op: "write", addr: addr, data: data}
}

func opRead(addr byte, reg byte) busOp {
	return busOp{op: "read", addr: addr, data: []byte{reg}, n: 1}
}

// fakeBus models the register file of a single chip and records every
// transaction. Multi-byte writes land on successive register addresses, and a
// write to GPIO also updates OLAT, like on the real chip. Setting failAt makes
// the n-th transaction (counting from 1) fail without being applied or logged.
type fakeBus struct {
	regs   [0x16]byte
	ops    []busOp
	failAt int
	count  int
}

func (b *fakeBus) I2cWrite(addr byte, data ...byte) error {
	b.count++
	if b.count == b.failAt {
		return errNack
	}
	b.ops = append(b.ops, busOp{op: "write", addr: addr, data: append([]byte(nil), data...)})
	reg := data[0]
	for i, value := range data[1:] {
		b.set(reg+byte(i), value)
	}
	return nil
}

func (b *fakeBus) I2cWriteRead(addr byte, out, in []byte) error {
	b.count++
	if b.count == b.failAt {
		return errNack
	}
	b.ops = append(b.ops, busOp{op: "read", addr: addr, data: append([]byte(nil), out...), n: len(in)})
	reg := out[0]
	for i := range in {
		in[i] = b.regs[reg+byte(i)]
	}
	return nil
}

func (b *fakeBus) set(reg, value byte) {
	b.regs[reg] = value
	if Register(reg&^1) == GPIO {
		b.regs[reg+2] = value // writing GPIO drives the output latch
	}
}
