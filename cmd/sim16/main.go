// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/emulator"
)

func main() {
	var compile string
	var image string
	var output string
	var step bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&image, "i", "", ".img memory image to run")
	flag.StringVar(&output, "o", "", "Write the memory image to a file, do not execute")
	flag.BoolVar(&step, "step", false, "Single step with the monitor")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if flag.NArg() != 0 {
		logrus.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(image) == 0) {
		logrus.Fatalf("%v: exactly one of -c or -i is required", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Output = os.Stdout

	source := compile
	if len(image) != 0 {
		source = image
	}

	inf, err := os.Open(source)
	if err != nil {
		logrus.Fatalf("%v: %v", source, err)
	}

	if len(compile) != 0 {
		err = emu.Assemble(inf)
	} else {
		err = emu.LoadImage(inf)
	}
	inf.Close()
	if err != nil {
		logrus.Fatalf("%v: %v", source, err)
	}

	// Save the loaded image only.
	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			logrus.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		err = cpu.WriteImage(ouf, emu.Image())
		if err != nil {
			logrus.Fatalf("%v: %v", output, err)
		}
		return
	}

	if step {
		mon := &emulator.Monitor{
			Emulator: emu,
			In:       os.Stdin,
			Out:      os.Stdout,
			Prompt:   term.IsTerminal(int(os.Stdin.Fd())),
		}
		err = mon.Run()
	} else {
		err = emu.Run()
	}
	if err != nil {
		logrus.Fatalf("%v: %v", source, err)
	}
}
