package cpu

// 6502 addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

// resolveOperand decodes the instruction's operand bytes (advancing
// PC past them) and returns the effective address exec functions
// should read or write. IMPLICIT and ACCUMULATOR modes have no
// address; their exec functions ignore the returned value.
//
// Zero-page-indexed and indirect modes wrap within the zero page
// rather than crossing into page 1, matching real 6502 behavior.
func (c *CPU) resolveOperand(b Bus, mode uint8) uint16 {
	switch mode {
	case IMPLICIT, ACCUMULATOR:
		return 0
	case IMMEDIATE:
		addr := c.PC
		c.PC++
		return addr
	case ZERO_PAGE:
		addr := uint16(b.Read(c.PC))
		c.PC++
		return addr
	case ZERO_PAGE_X:
		addr := uint16(b.Read(c.PC) + c.X)
		c.PC++
		return addr
	case ZERO_PAGE_Y:
		addr := uint16(b.Read(c.PC) + c.Y)
		c.PC++
		return addr
	case ABSOLUTE:
		addr := c.read16(b, c.PC)
		c.PC += 2
		return addr
	case ABSOLUTE_X:
		base := c.read16(b, c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		c.pageCrossed = differentPage(base, addr)
		return addr
	case ABSOLUTE_Y:
		base := c.read16(b, c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		c.pageCrossed = differentPage(base, addr)
		return addr
	case INDIRECT:
		// JMP ($xxFF) never crosses a page to fetch the high byte of
		// the target: it wraps to the start of the same page. This
		// is a documented 6502 hardware bug, not a bus quirk.
		ptr := c.read16(b, c.PC)
		c.PC += 2
		lo := uint16(b.Read(ptr))
		var hiAddr uint16
		if ptr&0x00FF == 0x00FF {
			hiAddr = ptr & 0xFF00
		} else {
			hiAddr = ptr + 1
		}
		hi := uint16(b.Read(hiAddr))
		return (hi << 8) | lo
	case INDIRECT_X:
		zp := b.Read(c.PC) + c.X
		c.PC++
		lo := uint16(b.Read(uint16(zp)))
		hi := uint16(b.Read(uint16(zp + 1)))
		return (hi << 8) | lo
	case INDIRECT_Y:
		zp := b.Read(c.PC)
		c.PC++
		lo := uint16(b.Read(uint16(zp)))
		hi := uint16(b.Read(uint16(zp + 1)))
		base := (hi << 8) | lo
		addr := base + uint16(c.Y)
		c.pageCrossed = differentPage(base, addr)
		return addr
	case RELATIVE:
		offset := int8(b.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset))
	}

	panic("cpu: unknown addressing mode")
}
