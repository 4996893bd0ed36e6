// Command nesdump is a plain-text stepping debugger for the nes core:
// no window, no SDL, no bubbletea — just a read-eval-print loop over
// stdin for inspecting CPU state and memory one instruction at a time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kbrandt/nescart/nes"
)

var romFile = flag.String("nes_rom", "", "Path to the NES ROM to run.")

func main() {
	flag.Parse()

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("Couldn't read ROM: %v", err)
	}

	emu, err := nes.Load(data)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	repl(emu)
}

func readAddress(r *bufio.Reader, prompt string) uint16 {
	fmt.Print(prompt)
	line, _ := r.ReadString('\n')
	var a uint16
	fmt.Sscanf(line, "%04x", &a)
	return a
}

func repl(emu *nes.Emulator) {
	in := bufio.NewReader(os.Stdin)

	for {
		fmt.Printf("%s\n\n", emu.CPUString())
		fmt.Println("(s)tep - execute one instruction")
		fmt.Println("(r)un  - run until a frame completes or the CPU halts")
		fmt.Println("(e) - hit the reset button")
		fmt.Println("(m)emory - dump a memory range")
		fmt.Println("(q)uit")
		fmt.Print("Choice: ")

		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case 's', 'S':
			if err := emu.Step(); err != nil {
				fmt.Printf("halted: %v\n", err)
				return
			}
		case 'r', 'R':
			if _, err := emu.RunFrame(); err != nil {
				fmt.Printf("halted: %v\n", err)
				return
			}
		case 'e', 'E':
			emu.Reset()
		case 'm', 'M':
			low := readAddress(in, "Low address (e.g. f00d): ")
			high := readAddress(in, "High address (e.g. beef): ")
			dumpMemory(emu, low, high)
		case 'q', 'Q':
			return
		}
	}
}

func dumpMemory(emu *nes.Emulator, low, high uint16) {
	fmt.Println()
	col := 0
	for addr := low; ; addr++ {
		fmt.Printf("%#04x: %#02x ", addr, emu.ReadMem(addr))
		col++
		if col%5 == 0 {
			fmt.Println()
		}
		if addr == high {
			break
		}
	}
	fmt.Printf("\n\n")
}
