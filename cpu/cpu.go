// Package cpu implements the NES's 6502-derivative CPU: official and
// unofficial opcodes, the flag register, the stack, and interrupt
// servicing (NMI/IRQ/reset). The core drives this package one Step at
// a time, interleaving it with the PPU and mapper.
package cpu

import "fmt"

const (
	RAM_SIZE = 0x0800 // 2KB of CPU-internal RAM, mirrored up to 0x1FFF by the bus
)

// 6502 interrupt vectors.
// https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	INT_NMI   = 0xFFFA
	INT_RESET = 0xFFFC
	INT_IRQ   = 0xFFFE
	INT_BRK   = INT_IRQ
)

// 6502 processor status flags.
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	STATUS_FLAG_CARRY             = 1 << 0 // C
	STATUS_FLAG_ZERO              = 1 << 1 // Z
	STATUS_FLAG_INTERRUPT_DISABLE = 1 << 2 // I
	STATUS_FLAG_DECIMAL           = 1 << 3 // D, accepted but inert: this core never runs in decimal mode
	STATUS_FLAG_BREAK             = 1 << 4 // B
	UNUSED_STATUS_FLAG            = 1 << 5 // always reads back as 1
	STATUS_FLAG_OVERFLOW          = 1 << 6 // V
	STATUS_FLAG_NEGATIVE          = 1 << 7 // N
)

const STACK_PAGE = 0x0100

// Bus is the CPU's view of the rest of the machine: RAM, PPU
// registers, APU/joypad I/O, and the cartridge mapper, all flattened
// into one 16-bit address space.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

type interrupt uint8

const (
	noInterrupt interrupt = iota
	irqInterrupt
	nmiInterrupt
)

// Halted is returned by Step when the CPU has executed KIL or an
// unrecognized opcode. The core treats this as a fatal condition; the
// host decides whether to surface it as an error or stop the loop.
type Halted struct {
	PC     uint16
	Opcode uint8
}

func (h *Halted) Error() string {
	return fmt.Sprintf("cpu: halted at pc=%#04x on opcode %#02x", h.PC, h.Opcode)
}

type CPU struct {
	A, X, Y uint8
	Status  uint8
	SP      uint8
	PC      uint16

	pending interrupt // latched by TriggerNMI/TriggerIRQ, serviced at the next Step

	cycles int // accumulated cycle count across the CPU's lifetime, for diagnostics

	// pageCrossed and branchTaken are set by the addressing-mode
	// resolver and the branch helper respectively, and consumed by
	// Step to compute the extra cycles a given instruction took.
	pageCrossed bool
	branchTaken bool

	halted *Halted
}

// New constructs a CPU in its post-power-up state. Callers must call
// Reset once the bus (and therefore the reset vector) is wired up.
func New() *CPU {
	return &CPU{
		SP:     0xFD,
		Status: UNUSED_STATUS_FLAG | STATUS_FLAG_INTERRUPT_DISABLE,
	}
}

// Reset loads the PC from the reset vector, as real hardware does
// when the reset line is asserted.
func (c *CPU) Reset(b Bus) {
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE | UNUSED_STATUS_FLAG)
	c.PC = c.read16(b, INT_RESET)
}

// TriggerNMI latches a non-maskable interrupt. NMI always wins: once
// latched it is never downgraded to a pending IRQ.
func (c *CPU) TriggerNMI() {
	c.pending = nmiInterrupt
}

// TriggerIRQ latches a maskable interrupt request. It is ignored if an
// NMI is already pending, and serviced at the next Step only if the
// interrupt-disable flag is clear.
func (c *CPU) TriggerIRQ() {
	if c.pending != nmiInterrupt {
		c.pending = irqInterrupt
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("A,X,Y: %3d,%3d,%3d PC:%#04x SP:%#02x P:%s", c.A, c.X, c.Y, c.PC, c.SP, statusString(c.Status))
}

func statusString(p uint8) string {
	flags := "czidb-vn"
	out := []byte(flags)
	for i := 0; i < 8; i++ {
		if p&(1<<i) != 0 {
			out[i] = flags[i] - ('a' - 'A')
		}
	}
	return string(out)
}

// Step either services a pending interrupt (pushing PC and status,
// jumping through the vector, and returning 7 cycles without executing
// an instruction) or executes exactly one instruction, and returns the
// number of CPU cycles it consumed. A Halted error is returned (alongside a best-effort cycle count) if
// execution hit KIL or an unrecognized opcode; the caller should stop
// driving the CPU once that happens.
func (c *CPU) Step(b Bus) (int, error) {
	if c.halted != nil {
		return 0, c.halted
	}

	irqAllowed := c.Status&STATUS_FLAG_INTERRUPT_DISABLE == 0
	if c.pending == nmiInterrupt || (c.pending == irqInterrupt && irqAllowed) {
		nmi := c.pending == nmiInterrupt
		c.pushAddress(b, c.PC)
		c.pushStack(b, c.Status&^STATUS_FLAG_BREAK|UNUSED_STATUS_FLAG)
		c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
		if nmi {
			c.PC = c.read16(b, INT_NMI)
		} else {
			c.PC = c.read16(b, INT_IRQ)
		}
		c.pending = noInterrupt
		return 7, nil
	}

	op := b.Read(c.PC)
	entry := opcodeTable[op]
	if entry.exec == nil {
		c.halted = &Halted{PC: c.PC, Opcode: op}
		return 0, c.halted
	}

	c.PC++
	c.pageCrossed = false
	c.branchTaken = false

	addr := c.resolveOperand(b, entry.mode)
	entry.exec(c, b, addr)

	cycles := int(entry.cycles)
	if c.pageCrossed && entry.extraOnPageCross {
		cycles++
	}
	if c.branchTaken {
		cycles++
		if c.pageCrossed {
			cycles++
		}
	}
	c.cycles += cycles

	if c.halted != nil {
		return cycles, c.halted
	}
	return cycles, nil
}

func (c *CPU) read16(b Bus, addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return (hi << 8) | lo
}

func (c *CPU) setNegativeAndZeroFlags(n uint8) {
	if n == 0 {
		c.flagsOn(STATUS_FLAG_ZERO)
	} else {
		c.flagsOff(STATUS_FLAG_ZERO)
	}
	if n&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_NEGATIVE)
	} else {
		c.flagsOff(STATUS_FLAG_NEGATIVE)
	}
}

func (c *CPU) stackAddr() uint16 {
	return STACK_PAGE + uint16(c.SP)
}

func (c *CPU) pushStack(b Bus, val uint8) {
	b.Write(c.stackAddr(), val)
	c.SP--
}

func (c *CPU) popStack(b Bus) uint8 {
	c.SP++
	return b.Read(c.stackAddr())
}

func (c *CPU) pushAddress(b Bus, addr uint16) {
	c.pushStack(b, uint8(addr>>8))
	c.pushStack(b, uint8(addr&0xFF))
}

func (c *CPU) popAddress(b Bus) uint16 {
	lo := uint16(c.popStack(b))
	hi := uint16(c.popStack(b))
	return (hi << 8) | lo
}

func (c *CPU) flagsOn(mask uint8)  { c.Status |= mask }
func (c *CPU) flagsOff(mask uint8) { c.Status &^= mask }

func differentPage(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
