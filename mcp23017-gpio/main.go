package main

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Thiapalm/mcp23017"
	"github.com/Thiapalm/mcp23017/linuxi2c"
	"github.com/antongulenko/golib"
	log "github.com/sirupsen/logrus"
)

type commandFunc func() error

var (
	device    = "/dev/i2c-1"
	addrStr   = "0x20"
	command   = "input"
	valueStr  = "0xFFFF"
	pull      = false
	sleepTime = 500 * time.Millisecond
	blinkNum  = uint(10)
	dummy     = false
	commands  = map[string]commandFunc{
		"input":  readInputs,
		"output": writeOutputs,
		"watch":  watchInterrupts,
		"blink":  blinkOutputs,
	}

	bus  mcp23017.I2cBus
	addr byte
)

func main() {
	flag.StringVar(&device, "dev", device, "I2C device file to open")
	flag.StringVar(&addrStr, "addr", addrStr, fmt.Sprintf("I2C address of the GPIO expander (%#02x..%#02x)", mcp23017.ADDRESS, mcp23017.MAX_ADDRESS))
	flag.StringVar(&command, "c", command, "Command to execute, one of: input output watch blink")
	flag.StringVar(&valueStr, "value", valueStr, "16 bit value to write (output command)")
	flag.BoolVar(&pull, "pull", pull, "Enable the internal pull-up resistors (input and watch commands)")
	flag.DurationVar(&sleepTime, "sleep", sleepTime, "Sleep time between updates")
	flag.UintVar(&blinkNum, "n", blinkNum, "Number of blink iterations")
	flag.BoolVar(&dummy, "dummy", dummy, "Log I2C transactions instead of opening -dev")
	golib.RegisterLogFlags()
	flag.Parse()
	golib.ConfigureLogging()
	golib.Checkerr(doMain())
}

func doMain() error {
	commandFunc, ok := commands[command]
	if !ok {
		allCommandNames := make([]string, 0, len(commands))
		for commandName := range commands {
			allCommandNames = append(allCommandNames, commandName)
		}
		sort.Strings(allCommandNames)
		return fmt.Errorf("Unknown command %v, available commands: %v", command, allCommandNames)
	}

	parsedAddr, err := strconv.ParseUint(addrStr, 0, 8)
	if err != nil {
		return fmt.Errorf("Failed to parse -addr '%v': %v", addrStr, err)
	}
	addr = byte(parsedAddr)

	var raw mcp23017.I2cBus
	if dummy {
		log.Println("Using dummy I2C bus, no device is opened")
		raw = mcp23017.DummyBus{}
	} else {
		linuxBus, err := linuxi2c.Open(device)
		if err != nil {
			return err
		}
		defer linuxBus.Close()
		log.Println("Successfully opened I2C bus", device)
		raw = linuxBus
	}
	sequenced := mcp23017.NewSequencedBus(raw, 16)
	defer sequenced.Close()
	bus = sequenced

	return commandFunc()
}

func configureInput() (*mcp23017.ChipInput, error) {
	chip, err := mcp23017.NewChip(bus, addr)
	if err != nil {
		return nil, err
	}
	in, err := chip.AsInput()
	if err != nil {
		return nil, err
	}
	if pull {
		if err := in.SetPull(mcp23017.High); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func readInputs() error {
	in, err := configureInput()
	if err != nil {
		return err
	}
	for {
		value, err := in.Read()
		if err != nil {
			return err
		}
		log.Printf("Port values: A=%08b B=%08b", byte(value), byte(value>>8))
		time.Sleep(sleepTime)
	}
}

func writeOutputs() error {
	value, err := strconv.ParseUint(valueStr, 0, 16)
	if err != nil {
		return fmt.Errorf("Failed to parse -value '%v': %v", valueStr, err)
	}
	chip, err := mcp23017.NewChip(bus, addr)
	if err != nil {
		return err
	}
	out, err := chip.AsOutput()
	if err != nil {
		return err
	}
	if err := out.Write(uint16(value)); err != nil {
		return err
	}
	latch, err := out.Read()
	if err != nil {
		return err
	}
	log.Printf("Output latches: A=%08b B=%08b", byte(latch), byte(latch>>8))
	return nil
}

func blinkOutputs() error {
	chip, err := mcp23017.NewChip(bus, addr)
	if err != nil {
		return err
	}
	out, err := chip.AsOutput()
	if err != nil {
		return err
	}
	val := uint16(0xFFFF)
	for i := uint(0); i < 2*blinkNum; i++ {
		if err := out.Write(val); err != nil {
			return err
		}
		val = ^val
		time.Sleep(sleepTime)
	}
	return out.Write(0)
}

func watchInterrupts() error {
	in, err := configureInput()
	if err != nil {
		return err
	}
	if err := in.SetInterruptMirror(true); err != nil {
		return err
	}
	banks := []mcp23017.Bank{mcp23017.BankA, mcp23017.BankB}
	for _, bank := range banks {
		for pin := byte(0); pin < mcp23017.NumPins; pin++ {
			if err := in.EnableInterrupt(bank, pin); err != nil {
				return err
			}
		}
	}
	log.Println("Interrupt-on-change enabled on all pins, polling...")

	for {
		for _, bank := range banks {
			pin, ok, err := in.InterruptedPin(bank)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			capture, err := in.InterruptCapture(bank)
			if err != nil {
				return err
			}
			log.Printf("Interrupt on pin %v%v, captured port value %08b", bank, pin, capture)
		}
		time.Sleep(sleepTime)
	}
}
