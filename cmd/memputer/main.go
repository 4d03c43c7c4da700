// Copyright 2025, John Mamish

// Package main implements a byte adder with no ALU: lookup tables plus a
// transfer record chain, run by the software transfer engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/johnMamish/samdma21-memputer/machine"
	"github.com/johnMamish/samdma21-memputer/microcode"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	var planfile string
	var opa string
	var opb string
	var output string
	var dump bool
	var verbose bool
	var debug bool
	var quiet bool

	flag.StringVar(&planfile, "l", "", ".star memory plan to load")
	flag.StringVar(&opa, "a", "0", "first addend byte")
	flag.StringVar(&opb, "b", "0", "second addend byte")
	flag.StringVar(&output, "o", "", "RAM image output file")
	flag.BoolVar(&dump, "dump", false, "dump the memory map and the chain")
	flag.BoolVar(&verbose, "v", false, "trace compiled and executed records")
	flag.BoolVar(&debug, "d", false, "debug logging")
	flag.BoolVar(&quiet, "q", false, "errors only")

	flag.Parse()

	logger := newLogger(debug, quiet)

	if flag.NArg() != 0 {
		logger.Fatal("unknown arguments", log.String("args", fmt.Sprintf("%v", flag.Args())))
	}

	if !quiet {
		logger.Info("memputer", log.String("version", buildinfo.Version(version, commit, date)))
	}

	value_a, err := strconv.ParseUint(opa, 0, 8)
	if err != nil {
		logger.Fatal("-a takes a byte", log.Err(err))
	}
	value_b, err := strconv.ParseUint(opb, 0, 8)
	if err != nil {
		logger.Fatal("-b takes a byte", log.Err(err))
	}

	plan, err := loadPlan(planfile)
	if err != nil {
		logger.Fatal("memory plan failed", log.Err(err))
	}

	mach, err := machine.NewMachine(plan)
	if err != nil {
		logger.Fatal("machine setup failed", log.Err(err))
	}
	mach.Verbose = verbose

	sum, err := mach.Add8(uint8(value_a), uint8(value_b))
	if err != nil {
		logger.Fatal("add failed", log.Err(err))
	}

	logger.Info("add8",
		log.Hex("a", uint8(value_a)),
		log.Hex("b", uint8(value_b)),
		log.Hex("sum", sum),
		log.String("low_carry", fmt.Sprintf("%v", mach.LowCarry())),
	)
	logger.Info("engine",
		log.String("records", fmt.Sprintf("%d", mach.Engine.Records)),
		log.String("beats", fmt.Sprintf("%d", mach.Engine.Beats)),
	)

	if dump {
		fmt.Print(mach.Space.String())
		fmt.Print(mach.Chain().String())
	}

	if len(output) != 0 {
		err = saveImage(mach, output)
		if err != nil {
			logger.Fatal("image save failed", log.Err(err))
		}
	}
}

func newLogger(debug bool, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

// loadPlan evaluates a plan script with the module's geometry constants
// predeclared. No script means the built-in placement.
func loadPlan(name string) (plan *microcode.Plan, err error) {
	if len(name) == 0 {
		return
	}

	plan, err = microcode.LoadPlan(name, nil, machine.Defines())

	return
}

func saveImage(mach *machine.Machine, name string) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return
	}

	err = mach.Space.Region("ram").Marshal(file)
	if err != nil {
		file.Close()
		return
	}

	err = file.Close()

	return
}
