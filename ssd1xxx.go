package oled

import "fmt"

// Opcode is an SSD1306 command byte.
type Opcode byte

// Controller commands.
const (
	SetMemoryMode         Opcode = 0x20
	SetColumnAddr         Opcode = 0x21
	SetPageAddr           Opcode = 0x22
	SetStartLine          Opcode = 0x40
	SetContrast           Opcode = 0x81
	SetChargePump         Opcode = 0x8D
	SetSegmentRemap       Opcode = 0xA1
	SetDisplayAllOnResume Opcode = 0xA4
	SetDisplayAllOn       Opcode = 0xA5
	SetNormalDisplay      Opcode = 0xA6
	SetInvertDisplay      Opcode = 0xA7
	SetMultiplexRatio     Opcode = 0xA8
	SetDisplayOff         Opcode = 0xAE
	SetDisplayOn          Opcode = 0xAF
	SetComScanInc         Opcode = 0xC0
	SetComScanDec         Opcode = 0xC8
	SetDisplayOffset      Opcode = 0xD3
	SetDisplayClockDiv    Opcode = 0xD5
	SetPrecharge          Opcode = 0xD9
	SetComPins            Opcode = 0xDA
)

// Command arguments.
const (
	enableChargePump       = 0x14
	horizontalAddressing   = 0x00
	clockDivOscillatorFreq = 0x80
	alternativeComPins     = 0x12
	prechargePeriod        = 0xF1
	defaultContrast        = 0xCF
)

// initSequence configures the controller for a 128x64 panel in horizontal
// addressing mode and switches it on. The controller applies the arguments to
// the opcode preceding them, so order matters.
//
// The command marker is sent once. Repeating it after the queue marker, as
// some drivers do, sends an extra "lower column start 0" command.
var initSequence = []byte{
	byte(SetDisplayOff),
	byte(SetDisplayClockDiv), clockDivOscillatorFreq,
	byte(SetMultiplexRatio), Height - 1,
	byte(SetDisplayOffset), 0x00,
	byte(SetStartLine),
	byte(SetChargePump), enableChargePump,
	byte(SetComPins), alternativeComPins,
	byte(SetPrecharge), prechargePeriod,
	byte(SetSegmentRemap),
	byte(SetComScanInc),
	byte(SetContrast), defaultContrast,
	byte(SetDisplayAllOnResume),
	byte(SetSegmentRemap),
	byte(SetComScanDec),
	byte(SetMemoryMode), horizontalAddressing,
	byte(SetDisplayOn),
}

// Mode is the I²C control byte that tells the controller how to interpret the
// bytes following it in the same transaction.
type Mode byte

// Framing modes.
const (
	CommandMode Mode = 0x00
	DataMode    Mode = 0x40
)

func (m Mode) String() string {
	switch m {
	case CommandMode:
		return "command"
	case DataMode:
		return "data"
	default:
		return fmt.Sprintf("mode(%#02x)", byte(m))
	}
}

// Frame is one bus transaction: a [Mode] control byte followed by the payload.
type Frame []byte

// NewFrame builds a frame of the given mode.
func NewFrame(mode Mode, payload ...byte) Frame {
	f := make(Frame, 1, 1+len(payload))
	f[0] = byte(mode)
	return append(f, payload...)
}

// Mode of the frame.
func (f Frame) Mode() Mode {
	return Mode(f[0])
}

// Payload without the control byte.
func (f Frame) Payload() []byte {
	return f[1:]
}

// commandQueue collects command bytes until they are flushed as a single frame.
type commandQueue struct {
	frame Frame
}

func newCommandQueue() commandQueue {
	return commandQueue{frame: NewFrame(CommandMode)}
}

func (q *commandQueue) append(commands ...byte) {
	q.frame = append(q.frame, commands...)
}

func (q *commandQueue) empty() bool {
	return len(q.frame) == 1
}

func (q *commandQueue) reset() {
	q.frame = q.frame[:1]
}
