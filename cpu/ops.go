package cpu

// Each op function receives the already-resolved operand address (0
// for IMPLICIT/ACCUMULATOR instructions, which read c.A directly).

func opADC(c *CPU, b Bus, addr uint16) { c.addWithCarry(b.Read(addr)) }

func (c *CPU) addWithCarry(v uint8) {
	carry := uint16(c.Status & STATUS_FLAG_CARRY)
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)

	if sum > 0xFF {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	if (c.A^result)&(v^result)&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_OVERFLOW)
	} else {
		c.flagsOff(STATUS_FLAG_OVERFLOW)
	}

	c.A = result
	c.setNegativeAndZeroFlags(c.A)
}

func opSBC(c *CPU, b Bus, addr uint16) { c.addWithCarry(^b.Read(addr)) }

func opAND(c *CPU, b Bus, addr uint16) {
	c.A &= b.Read(addr)
	c.setNegativeAndZeroFlags(c.A)
}

func opORA(c *CPU, b Bus, addr uint16) {
	c.A |= b.Read(addr)
	c.setNegativeAndZeroFlags(c.A)
}

func opEOR(c *CPU, b Bus, addr uint16) {
	c.A ^= b.Read(addr)
	c.setNegativeAndZeroFlags(c.A)
}

func (c *CPU) aslValue(v uint8) uint8 {
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v <<= 1
	c.setNegativeAndZeroFlags(v)
	return v
}

func opASL(c *CPU, b Bus, addr uint16) { b.Write(addr, c.aslValue(b.Read(addr))) }
func opASLAcc(c *CPU, b Bus, addr uint16) { c.A = c.aslValue(c.A) }

func (c *CPU) lsrValue(v uint8) uint8 {
	if v&1 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v >>= 1
	c.setNegativeAndZeroFlags(v)
	return v
}

func opLSR(c *CPU, b Bus, addr uint16) { b.Write(addr, c.lsrValue(b.Read(addr))) }
func opLSRAcc(c *CPU, b Bus, addr uint16) { c.A = c.lsrValue(c.A) }

func (c *CPU) rolValue(v uint8) uint8 {
	carryIn := c.Status & STATUS_FLAG_CARRY
	if v&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (v << 1) | carryIn
	c.setNegativeAndZeroFlags(v)
	return v
}

func opROL(c *CPU, b Bus, addr uint16) { b.Write(addr, c.rolValue(b.Read(addr))) }
func opROLAcc(c *CPU, b Bus, addr uint16) { c.A = c.rolValue(c.A) }

func (c *CPU) rorValue(v uint8) uint8 {
	carryIn := c.Status & STATUS_FLAG_CARRY
	if v&1 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	v = (carryIn << 7) | (v >> 1)
	c.setNegativeAndZeroFlags(v)
	return v
}

func opROR(c *CPU, b Bus, addr uint16) { b.Write(addr, c.rorValue(b.Read(addr))) }
func opRORAcc(c *CPU, b Bus, addr uint16) { c.A = c.rorValue(c.A) }

func (c *CPU) baseCompare(reg, v uint8) {
	if reg >= v {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	c.setNegativeAndZeroFlags(reg - v)
}

func opCMP(c *CPU, b Bus, addr uint16) { c.baseCompare(c.A, b.Read(addr)) }
func opCPX(c *CPU, b Bus, addr uint16) { c.baseCompare(c.X, b.Read(addr)) }
func opCPY(c *CPU, b Bus, addr uint16) { c.baseCompare(c.Y, b.Read(addr)) }

func opBIT(c *CPU, b Bus, addr uint16) {
	v := b.Read(addr)
	if c.A&v == 0 {
		c.flagsOn(STATUS_FLAG_ZERO)
	} else {
		c.flagsOff(STATUS_FLAG_ZERO)
	}
	c.Status = (c.Status &^ (STATUS_FLAG_NEGATIVE | STATUS_FLAG_OVERFLOW)) | (v & (STATUS_FLAG_NEGATIVE | STATUS_FLAG_OVERFLOW))
}

func opDEC(c *CPU, b Bus, addr uint16) {
	v := b.Read(addr) - 1
	b.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func opINC(c *CPU, b Bus, addr uint16) {
	v := b.Read(addr) + 1
	b.Write(addr, v)
	c.setNegativeAndZeroFlags(v)
}

func opDEX(c *CPU, b Bus, addr uint16) { c.X--; c.setNegativeAndZeroFlags(c.X) }
func opDEY(c *CPU, b Bus, addr uint16) { c.Y--; c.setNegativeAndZeroFlags(c.Y) }
func opINX(c *CPU, b Bus, addr uint16) { c.X++; c.setNegativeAndZeroFlags(c.X) }
func opINY(c *CPU, b Bus, addr uint16) { c.Y++; c.setNegativeAndZeroFlags(c.Y) }

func opJMP(c *CPU, b Bus, addr uint16) { c.PC = addr }

func opJSR(c *CPU, b Bus, addr uint16) {
	c.pushAddress(b, c.PC-1) // JSR pushes the address of its last operand byte
	c.PC = addr
}

func opRTS(c *CPU, b Bus, addr uint16) { c.PC = c.popAddress(b) + 1 }

func opBRK(c *CPU, b Bus, addr uint16) {
	c.PC++ // BRK is treated as a 2-byte instruction; the second byte is a padding byte
	c.pushAddress(b, c.PC)
	c.pushStack(b, c.Status|STATUS_FLAG_BREAK|UNUSED_STATUS_FLAG)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.PC = c.read16(b, INT_BRK)
}

func opRTI(c *CPU, b Bus, addr uint16) {
	// The B flag only ever exists on the value pushed to the stack; it
	// is discarded on pull, and bit 5 always reads back set.
	c.Status = (c.popStack(b) | UNUSED_STATUS_FLAG) &^ STATUS_FLAG_BREAK
	c.PC = c.popAddress(b)
}

func opPHA(c *CPU, b Bus, addr uint16) { c.pushStack(b, c.A) }
func opPHP(c *CPU, b Bus, addr uint16) { c.pushStack(b, c.Status|STATUS_FLAG_BREAK|UNUSED_STATUS_FLAG) }

func opPLA(c *CPU, b Bus, addr uint16) {
	c.A = c.popStack(b)
	c.setNegativeAndZeroFlags(c.A)
}

func opPLP(c *CPU, b Bus, addr uint16) {
	c.Status = (c.popStack(b) | UNUSED_STATUS_FLAG) &^ STATUS_FLAG_BREAK
}

func (c *CPU) branch(taken bool, addr uint16) {
	if !taken {
		return
	}
	c.branchTaken = true
	c.pageCrossed = differentPage(c.PC, addr)
	c.PC = addr
}

func opBCC(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_CARRY == 0, addr) }
func opBCS(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_CARRY != 0, addr) }
func opBEQ(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_ZERO != 0, addr) }
func opBNE(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_ZERO == 0, addr) }
func opBMI(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_NEGATIVE != 0, addr) }
func opBPL(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_NEGATIVE == 0, addr) }
func opBVC(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_OVERFLOW == 0, addr) }
func opBVS(c *CPU, b Bus, addr uint16) { c.branch(c.Status&STATUS_FLAG_OVERFLOW != 0, addr) }

func opCLC(c *CPU, b Bus, addr uint16) { c.flagsOff(STATUS_FLAG_CARRY) }
func opSEC(c *CPU, b Bus, addr uint16) { c.flagsOn(STATUS_FLAG_CARRY) }
func opCLD(c *CPU, b Bus, addr uint16) { c.flagsOff(STATUS_FLAG_DECIMAL) }
func opSED(c *CPU, b Bus, addr uint16) { c.flagsOn(STATUS_FLAG_DECIMAL) }
func opCLI(c *CPU, b Bus, addr uint16) { c.flagsOff(STATUS_FLAG_INTERRUPT_DISABLE) }
func opSEI(c *CPU, b Bus, addr uint16) { c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE) }
func opCLV(c *CPU, b Bus, addr uint16) { c.flagsOff(STATUS_FLAG_OVERFLOW) }

func opLDA(c *CPU, b Bus, addr uint16) { c.A = b.Read(addr); c.setNegativeAndZeroFlags(c.A) }
func opLDX(c *CPU, b Bus, addr uint16) { c.X = b.Read(addr); c.setNegativeAndZeroFlags(c.X) }
func opLDY(c *CPU, b Bus, addr uint16) { c.Y = b.Read(addr); c.setNegativeAndZeroFlags(c.Y) }
func opSTA(c *CPU, b Bus, addr uint16) { b.Write(addr, c.A) }
func opSTX(c *CPU, b Bus, addr uint16) { b.Write(addr, c.X) }
func opSTY(c *CPU, b Bus, addr uint16) { b.Write(addr, c.Y) }

func opTAX(c *CPU, b Bus, addr uint16) { c.X = c.A; c.setNegativeAndZeroFlags(c.X) }
func opTAY(c *CPU, b Bus, addr uint16) { c.Y = c.A; c.setNegativeAndZeroFlags(c.Y) }
func opTXA(c *CPU, b Bus, addr uint16) { c.A = c.X; c.setNegativeAndZeroFlags(c.A) }
func opTYA(c *CPU, b Bus, addr uint16) { c.A = c.Y; c.setNegativeAndZeroFlags(c.A) }
func opTSX(c *CPU, b Bus, addr uint16) { c.X = c.SP; c.setNegativeAndZeroFlags(c.X) }
func opTXS(c *CPU, b Bus, addr uint16) { c.SP = c.X }

func opNOP(c *CPU, b Bus, addr uint16) {}

// Unofficial opcodes. Each reuses the official helper it's built from,
// matching the combined read-modify-write + ALU behavior real 6502
// clones exhibit when two microcode steps overlap on the same cycle.

func opLAX(c *CPU, b Bus, addr uint16) {
	c.A = b.Read(addr)
	c.X = c.A
	c.setNegativeAndZeroFlags(c.X)
}

func opSAX(c *CPU, b Bus, addr uint16) { b.Write(addr, c.A&c.X) }

func opSLO(c *CPU, b Bus, addr uint16) {
	v := c.aslValue(b.Read(addr))
	b.Write(addr, v)
	c.A |= v
	c.setNegativeAndZeroFlags(c.A)
}

func opRLA(c *CPU, b Bus, addr uint16) {
	v := c.rolValue(b.Read(addr))
	b.Write(addr, v)
	c.A &= v
	c.setNegativeAndZeroFlags(c.A)
}

func opSRE(c *CPU, b Bus, addr uint16) {
	v := c.lsrValue(b.Read(addr))
	b.Write(addr, v)
	c.A ^= v
	c.setNegativeAndZeroFlags(c.A)
}

func opRRA(c *CPU, b Bus, addr uint16) {
	v := c.rorValue(b.Read(addr))
	b.Write(addr, v)
	c.addWithCarry(v)
}

func opDCP(c *CPU, b Bus, addr uint16) {
	v := b.Read(addr) - 1
	b.Write(addr, v)
	c.baseCompare(c.A, v)
}

func opISB(c *CPU, b Bus, addr uint16) {
	v := b.Read(addr) + 1
	b.Write(addr, v)
	c.addWithCarry(^v)
}

func opAAC(c *CPU, b Bus, addr uint16) {
	c.A &= b.Read(addr)
	c.setNegativeAndZeroFlags(c.A)
	if c.Status&STATUS_FLAG_NEGATIVE != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
}

func opASR(c *CPU, b Bus, addr uint16) {
	c.A &= b.Read(addr)
	c.A = c.lsrValue(c.A)
}

func opARR(c *CPU, b Bus, addr uint16) {
	c.A &= b.Read(addr)
	c.A = c.rorValue(c.A)
}

func opAXS(c *CPU, b Bus, addr uint16) {
	operand := b.Read(addr)
	av := c.A & c.X
	if av >= operand {
		c.flagsOn(STATUS_FLAG_CARRY)
	} else {
		c.flagsOff(STATUS_FLAG_CARRY)
	}
	c.X = av - operand
	c.setNegativeAndZeroFlags(c.X)
}

func opSXA(c *CPU, b Bus, addr uint16) { b.Write(addr, c.X&c.A) }
func opSYA(c *CPU, b Bus, addr uint16) { b.Write(addr, c.Y&c.A) }

func opKIL(c *CPU, b Bus, addr uint16) {
	c.halted = &Halted{PC: c.PC - 1, Opcode: b.Read(c.PC - 1)}
}
