package cpu

// opcodeEntry is one row of the 256-entry dispatch table: how to
// decode the operand, how many base cycles the instruction takes, and
// whether a page crossing during operand resolution adds one more.
type opcodeEntry struct {
	name             string
	mode             uint8
	cycles           uint8
	extraOnPageCross bool
	exec             func(c *CPU, b Bus, addr uint16)
}

var opcodeTable [256]opcodeEntry

func def(op uint8, name string, mode uint8, cycles uint8, extraOnPageCross bool, exec func(c *CPU, b Bus, addr uint16)) {
	opcodeTable[op] = opcodeEntry{name, mode, cycles, extraOnPageCross, exec}
}

func init() {
	def(0x69, "ADC", IMMEDIATE, 2, false, opADC)
	def(0x65, "ADC", ZERO_PAGE, 3, false, opADC)
	def(0x75, "ADC", ZERO_PAGE_X, 4, false, opADC)
	def(0x6D, "ADC", ABSOLUTE, 4, false, opADC)
	def(0x7D, "ADC", ABSOLUTE_X, 4, true, opADC)
	def(0x79, "ADC", ABSOLUTE_Y, 4, true, opADC)
	def(0x61, "ADC", INDIRECT_X, 6, false, opADC)
	def(0x71, "ADC", INDIRECT_Y, 5, true, opADC)

	def(0xE9, "SBC", IMMEDIATE, 2, false, opSBC)
	def(0xEB, "SBC", IMMEDIATE, 2, false, opSBC) // undocumented duplicate of 0xE9
	def(0xE5, "SBC", ZERO_PAGE, 3, false, opSBC)
	def(0xF5, "SBC", ZERO_PAGE_X, 4, false, opSBC)
	def(0xED, "SBC", ABSOLUTE, 4, false, opSBC)
	def(0xFD, "SBC", ABSOLUTE_X, 4, true, opSBC)
	def(0xF9, "SBC", ABSOLUTE_Y, 4, true, opSBC)
	def(0xE1, "SBC", INDIRECT_X, 6, false, opSBC)
	def(0xF1, "SBC", INDIRECT_Y, 5, true, opSBC)

	def(0x29, "AND", IMMEDIATE, 2, false, opAND)
	def(0x25, "AND", ZERO_PAGE, 3, false, opAND)
	def(0x35, "AND", ZERO_PAGE_X, 4, false, opAND)
	def(0x2D, "AND", ABSOLUTE, 4, false, opAND)
	def(0x3D, "AND", ABSOLUTE_X, 4, true, opAND)
	def(0x39, "AND", ABSOLUTE_Y, 4, true, opAND)
	def(0x21, "AND", INDIRECT_X, 6, false, opAND)
	def(0x31, "AND", INDIRECT_Y, 5, true, opAND)

	def(0x09, "ORA", IMMEDIATE, 2, false, opORA)
	def(0x05, "ORA", ZERO_PAGE, 3, false, opORA)
	def(0x15, "ORA", ZERO_PAGE_X, 4, false, opORA)
	def(0x0D, "ORA", ABSOLUTE, 4, false, opORA)
	def(0x1D, "ORA", ABSOLUTE_X, 4, true, opORA)
	def(0x19, "ORA", ABSOLUTE_Y, 4, true, opORA)
	def(0x01, "ORA", INDIRECT_X, 6, false, opORA)
	def(0x11, "ORA", INDIRECT_Y, 5, true, opORA)

	def(0x49, "EOR", IMMEDIATE, 2, false, opEOR)
	def(0x45, "EOR", ZERO_PAGE, 3, false, opEOR)
	def(0x55, "EOR", ZERO_PAGE_X, 4, false, opEOR)
	def(0x4D, "EOR", ABSOLUTE, 4, false, opEOR)
	def(0x5D, "EOR", ABSOLUTE_X, 4, true, opEOR)
	def(0x59, "EOR", ABSOLUTE_Y, 4, true, opEOR)
	def(0x41, "EOR", INDIRECT_X, 6, false, opEOR)
	def(0x51, "EOR", INDIRECT_Y, 5, true, opEOR)

	def(0x0A, "ASL", ACCUMULATOR, 2, false, opASLAcc)
	def(0x06, "ASL", ZERO_PAGE, 5, false, opASL)
	def(0x16, "ASL", ZERO_PAGE_X, 6, false, opASL)
	def(0x0E, "ASL", ABSOLUTE, 6, false, opASL)
	def(0x1E, "ASL", ABSOLUTE_X, 7, false, opASL)

	def(0x4A, "LSR", ACCUMULATOR, 2, false, opLSRAcc)
	def(0x46, "LSR", ZERO_PAGE, 5, false, opLSR)
	def(0x56, "LSR", ZERO_PAGE_X, 6, false, opLSR)
	def(0x4E, "LSR", ABSOLUTE, 6, false, opLSR)
	def(0x5E, "LSR", ABSOLUTE_X, 7, false, opLSR)

	def(0x2A, "ROL", ACCUMULATOR, 2, false, opROLAcc)
	def(0x26, "ROL", ZERO_PAGE, 5, false, opROL)
	def(0x36, "ROL", ZERO_PAGE_X, 6, false, opROL)
	def(0x2E, "ROL", ABSOLUTE, 6, false, opROL)
	def(0x3E, "ROL", ABSOLUTE_X, 7, false, opROL)

	def(0x6A, "ROR", ACCUMULATOR, 2, false, opRORAcc)
	def(0x66, "ROR", ZERO_PAGE, 5, false, opROR)
	def(0x76, "ROR", ZERO_PAGE_X, 6, false, opROR)
	def(0x6E, "ROR", ABSOLUTE, 6, false, opROR)
	def(0x7E, "ROR", ABSOLUTE_X, 7, false, opROR)

	def(0xC9, "CMP", IMMEDIATE, 2, false, opCMP)
	def(0xC5, "CMP", ZERO_PAGE, 3, false, opCMP)
	def(0xD5, "CMP", ZERO_PAGE_X, 4, false, opCMP)
	def(0xCD, "CMP", ABSOLUTE, 4, false, opCMP)
	def(0xDD, "CMP", ABSOLUTE_X, 4, true, opCMP)
	def(0xD9, "CMP", ABSOLUTE_Y, 4, true, opCMP)
	def(0xC1, "CMP", INDIRECT_X, 6, false, opCMP)
	def(0xD1, "CMP", INDIRECT_Y, 5, true, opCMP)

	def(0xE0, "CPX", IMMEDIATE, 2, false, opCPX)
	def(0xE4, "CPX", ZERO_PAGE, 3, false, opCPX)
	def(0xEC, "CPX", ABSOLUTE, 4, false, opCPX)

	def(0xC0, "CPY", IMMEDIATE, 2, false, opCPY)
	def(0xC4, "CPY", ZERO_PAGE, 3, false, opCPY)
	def(0xCC, "CPY", ABSOLUTE, 4, false, opCPY)

	def(0x24, "BIT", ZERO_PAGE, 3, false, opBIT)
	def(0x2C, "BIT", ABSOLUTE, 4, false, opBIT)

	def(0xC6, "DEC", ZERO_PAGE, 5, false, opDEC)
	def(0xD6, "DEC", ZERO_PAGE_X, 6, false, opDEC)
	def(0xCE, "DEC", ABSOLUTE, 6, false, opDEC)
	def(0xDE, "DEC", ABSOLUTE_X, 7, false, opDEC)

	def(0xE6, "INC", ZERO_PAGE, 5, false, opINC)
	def(0xF6, "INC", ZERO_PAGE_X, 6, false, opINC)
	def(0xEE, "INC", ABSOLUTE, 6, false, opINC)
	def(0xFE, "INC", ABSOLUTE_X, 7, false, opINC)

	def(0xCA, "DEX", IMPLICIT, 2, false, opDEX)
	def(0x88, "DEY", IMPLICIT, 2, false, opDEY)
	def(0xE8, "INX", IMPLICIT, 2, false, opINX)
	def(0xC8, "INY", IMPLICIT, 2, false, opINY)

	def(0x4C, "JMP", ABSOLUTE, 3, false, opJMP)
	def(0x6C, "JMP", INDIRECT, 5, false, opJMP)
	def(0x20, "JSR", ABSOLUTE, 6, false, opJSR)
	def(0x60, "RTS", IMPLICIT, 6, false, opRTS)
	def(0x00, "BRK", IMPLICIT, 7, false, opBRK)
	def(0x40, "RTI", IMPLICIT, 6, false, opRTI)

	def(0x48, "PHA", IMPLICIT, 3, false, opPHA)
	def(0x08, "PHP", IMPLICIT, 3, false, opPHP)
	def(0x68, "PLA", IMPLICIT, 4, false, opPLA)
	def(0x28, "PLP", IMPLICIT, 4, false, opPLP)

	def(0x90, "BCC", RELATIVE, 2, false, opBCC)
	def(0xB0, "BCS", RELATIVE, 2, false, opBCS)
	def(0xF0, "BEQ", RELATIVE, 2, false, opBEQ)
	def(0xD0, "BNE", RELATIVE, 2, false, opBNE)
	def(0x30, "BMI", RELATIVE, 2, false, opBMI)
	def(0x10, "BPL", RELATIVE, 2, false, opBPL)
	def(0x50, "BVC", RELATIVE, 2, false, opBVC)
	def(0x70, "BVS", RELATIVE, 2, false, opBVS)

	def(0x18, "CLC", IMPLICIT, 2, false, opCLC)
	def(0x38, "SEC", IMPLICIT, 2, false, opSEC)
	def(0xD8, "CLD", IMPLICIT, 2, false, opCLD)
	def(0xF8, "SED", IMPLICIT, 2, false, opSED)
	def(0x58, "CLI", IMPLICIT, 2, false, opCLI)
	def(0x78, "SEI", IMPLICIT, 2, false, opSEI)
	def(0xB8, "CLV", IMPLICIT, 2, false, opCLV)

	def(0xA9, "LDA", IMMEDIATE, 2, false, opLDA)
	def(0xA5, "LDA", ZERO_PAGE, 3, false, opLDA)
	def(0xB5, "LDA", ZERO_PAGE_X, 4, false, opLDA)
	def(0xAD, "LDA", ABSOLUTE, 4, false, opLDA)
	def(0xBD, "LDA", ABSOLUTE_X, 4, true, opLDA)
	def(0xB9, "LDA", ABSOLUTE_Y, 4, true, opLDA)
	def(0xA1, "LDA", INDIRECT_X, 6, false, opLDA)
	def(0xB1, "LDA", INDIRECT_Y, 5, true, opLDA)

	def(0xA2, "LDX", IMMEDIATE, 2, false, opLDX)
	def(0xA6, "LDX", ZERO_PAGE, 3, false, opLDX)
	def(0xB6, "LDX", ZERO_PAGE_Y, 4, false, opLDX)
	def(0xAE, "LDX", ABSOLUTE, 4, false, opLDX)
	def(0xBE, "LDX", ABSOLUTE_Y, 4, true, opLDX)

	def(0xA0, "LDY", IMMEDIATE, 2, false, opLDY)
	def(0xA4, "LDY", ZERO_PAGE, 3, false, opLDY)
	def(0xB4, "LDY", ZERO_PAGE_X, 4, false, opLDY)
	def(0xAC, "LDY", ABSOLUTE, 4, false, opLDY)
	def(0xBC, "LDY", ABSOLUTE_X, 4, true, opLDY)

	def(0x85, "STA", ZERO_PAGE, 3, false, opSTA)
	def(0x95, "STA", ZERO_PAGE_X, 4, false, opSTA)
	def(0x8D, "STA", ABSOLUTE, 4, false, opSTA)
	def(0x9D, "STA", ABSOLUTE_X, 5, false, opSTA)
	def(0x99, "STA", ABSOLUTE_Y, 5, false, opSTA)
	def(0x81, "STA", INDIRECT_X, 6, false, opSTA)
	def(0x91, "STA", INDIRECT_Y, 6, false, opSTA)

	def(0x86, "STX", ZERO_PAGE, 3, false, opSTX)
	def(0x96, "STX", ZERO_PAGE_Y, 4, false, opSTX)
	def(0x8E, "STX", ABSOLUTE, 4, false, opSTX)

	def(0x84, "STY", ZERO_PAGE, 3, false, opSTY)
	def(0x94, "STY", ZERO_PAGE_X, 4, false, opSTY)
	def(0x8C, "STY", ABSOLUTE, 4, false, opSTY)

	def(0xAA, "TAX", IMPLICIT, 2, false, opTAX)
	def(0xA8, "TAY", IMPLICIT, 2, false, opTAY)
	def(0x8A, "TXA", IMPLICIT, 2, false, opTXA)
	def(0x98, "TYA", IMPLICIT, 2, false, opTYA)
	def(0xBA, "TSX", IMPLICIT, 2, false, opTSX)
	def(0x9A, "TXS", IMPLICIT, 2, false, opTXS)

	def(0xEA, "NOP", IMPLICIT, 2, false, opNOP)

	// Unofficial NOP family: 1, 2, and 3-byte variants across several
	// addressing modes. All simply decode and discard the operand.
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0xDA, 0xFA} {
		def(op, "NOP", IMPLICIT, 2, false, opNOP)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(op, "NOP", IMMEDIATE, 2, false, opNOP)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		def(op, "NOP", ZERO_PAGE, 3, false, opNOP)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(op, "NOP", ZERO_PAGE_X, 4, false, opNOP)
	}
	def(0x0C, "NOP", ABSOLUTE, 4, false, opNOP)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(op, "NOP", ABSOLUTE_X, 4, true, opNOP)
	}

	// LAX: load accumulator and X from the same operand.
	def(0xA7, "LAX", ZERO_PAGE, 3, false, opLAX)
	def(0xB7, "LAX", ZERO_PAGE_Y, 4, false, opLAX)
	def(0xAF, "LAX", ABSOLUTE, 4, false, opLAX)
	def(0xBF, "LAX", ABSOLUTE_Y, 4, true, opLAX)
	def(0xA3, "LAX", INDIRECT_X, 6, false, opLAX)
	def(0xB3, "LAX", INDIRECT_Y, 5, true, opLAX)

	// SAX: store A&X.
	def(0x87, "SAX", ZERO_PAGE, 3, false, opSAX)
	def(0x97, "SAX", ZERO_PAGE_Y, 4, false, opSAX)
	def(0x8F, "SAX", ABSOLUTE, 4, false, opSAX)
	def(0x83, "SAX", INDIRECT_X, 6, false, opSAX)

	// SLO: ASL then ORA.
	def(0x07, "SLO", ZERO_PAGE, 5, false, opSLO)
	def(0x17, "SLO", ZERO_PAGE_X, 6, false, opSLO)
	def(0x0F, "SLO", ABSOLUTE, 6, false, opSLO)
	def(0x1F, "SLO", ABSOLUTE_X, 7, false, opSLO)
	def(0x1B, "SLO", ABSOLUTE_Y, 7, false, opSLO)
	def(0x03, "SLO", INDIRECT_X, 8, false, opSLO)
	def(0x13, "SLO", INDIRECT_Y, 8, false, opSLO)

	// RLA: ROL then AND.
	def(0x27, "RLA", ZERO_PAGE, 5, false, opRLA)
	def(0x37, "RLA", ZERO_PAGE_X, 6, false, opRLA)
	def(0x2F, "RLA", ABSOLUTE, 6, false, opRLA)
	def(0x3F, "RLA", ABSOLUTE_X, 7, false, opRLA)
	def(0x3B, "RLA", ABSOLUTE_Y, 7, false, opRLA)
	def(0x23, "RLA", INDIRECT_X, 8, false, opRLA)
	def(0x33, "RLA", INDIRECT_Y, 8, false, opRLA)

	// SRE: LSR then EOR.
	def(0x47, "SRE", ZERO_PAGE, 5, false, opSRE)
	def(0x57, "SRE", ZERO_PAGE_X, 6, false, opSRE)
	def(0x4F, "SRE", ABSOLUTE, 6, false, opSRE)
	def(0x5F, "SRE", ABSOLUTE_X, 7, false, opSRE)
	def(0x5B, "SRE", ABSOLUTE_Y, 7, false, opSRE)
	def(0x43, "SRE", INDIRECT_X, 8, false, opSRE)
	def(0x53, "SRE", INDIRECT_Y, 8, false, opSRE)

	// RRA: ROR then ADC.
	def(0x67, "RRA", ZERO_PAGE, 5, false, opRRA)
	def(0x77, "RRA", ZERO_PAGE_X, 6, false, opRRA)
	def(0x6F, "RRA", ABSOLUTE, 6, false, opRRA)
	def(0x7F, "RRA", ABSOLUTE_X, 7, false, opRRA)
	def(0x7B, "RRA", ABSOLUTE_Y, 7, false, opRRA)
	def(0x63, "RRA", INDIRECT_X, 8, false, opRRA)
	def(0x73, "RRA", INDIRECT_Y, 8, false, opRRA)

	// DCP: DEC then CMP.
	def(0xC7, "DCP", ZERO_PAGE, 5, false, opDCP)
	def(0xD7, "DCP", ZERO_PAGE_X, 6, false, opDCP)
	def(0xCF, "DCP", ABSOLUTE, 6, false, opDCP)
	def(0xDF, "DCP", ABSOLUTE_X, 7, false, opDCP)
	def(0xDB, "DCP", ABSOLUTE_Y, 7, false, opDCP)
	def(0xC3, "DCP", INDIRECT_X, 8, false, opDCP)
	def(0xD3, "DCP", INDIRECT_Y, 8, false, opDCP)

	// ISB (a.k.a. ISC): INC then SBC.
	def(0xE7, "ISB", ZERO_PAGE, 5, false, opISB)
	def(0xF7, "ISB", ZERO_PAGE_X, 6, false, opISB)
	def(0xEF, "ISB", ABSOLUTE, 6, false, opISB)
	def(0xFF, "ISB", ABSOLUTE_X, 7, false, opISB)
	def(0xFB, "ISB", ABSOLUTE_Y, 7, false, opISB)
	def(0xE3, "ISB", INDIRECT_X, 8, false, opISB)
	def(0xF3, "ISB", INDIRECT_Y, 8, false, opISB)

	def(0x0B, "AAC", IMMEDIATE, 2, false, opAAC)
	def(0x2B, "AAC", IMMEDIATE, 2, false, opAAC)
	def(0x4B, "ASR", IMMEDIATE, 2, false, opASR)
	def(0x6B, "ARR", IMMEDIATE, 2, false, opARR)
	def(0xCB, "AXS", IMMEDIATE, 2, false, opAXS)
	def(0x9E, "SXA", ABSOLUTE_Y, 5, false, opSXA)
	def(0x9C, "SYA", ABSOLUTE_X, 5, false, opSYA)

	// KIL: jams the CPU. Twelve undocumented opcode bytes do this on real
	// hardware; the core treats it as a halt rather than imitating the
	// bus-float lockup.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		def(op, "KIL", IMPLICIT, 1, false, opKIL)
	}
}
