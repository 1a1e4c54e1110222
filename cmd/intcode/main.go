// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	stdio "io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/script"
	"github.com/ezrec/intcode/translate"
)

var ErrSearchPhases = errors.New(translate.From("-search needs phase settings (-n or [network] phases)"))

// runMode is how the program is run.
type runMode int

const (
	RUN_TAPE    = runMode(0) // Emulator on input and output tapes.
	RUN_NETWORK = runMode(1) // Network of emulators.
	RUN_SCRIPT  = runMode(2) // Starlark driver.
)

// selectMode picks the run mode from the settings.
func selectMode(cfg *config.Config, scriptPath string, search bool) (mode runMode, err error) {
	switch {
	case len(cfg.Network.Phases) != 0:
		mode = RUN_NETWORK
	case search:
		err = ErrSearchPhases
	case len(scriptPath) != 0:
		mode = RUN_SCRIPT
	default:
		mode = RUN_TAPE
	}

	return
}

// parsePhases parses a comma separated list of phase settings.
func parsePhases(text string) (phases []int64, err error) {
	for _, word := range strings.Split(text, ",") {
		var phase int64
		phase, err = strconv.ParseInt(strings.TrimSpace(word), 10, 64)
		if err != nil {
			return
		}
		phases = append(phases, phase)
	}

	return
}

func main() {
	var programPath string
	var configPath string
	var scriptPath string
	var input string
	var output string
	var phases string
	var feedback bool
	var search bool
	var ascii bool
	var lang string
	var verbose bool

	flag.StringVar(&programPath, "p", "", "Intcode program file")
	flag.StringVar(&configPath, "c", "", "intcode.toml configuration file")
	flag.StringVar(&scriptPath, "s", "", "Starlark script to drive the program")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.StringVar(&phases, "n", "", "Run as a network with these phase settings")
	flag.BoolVar(&feedback, "f", false, "Network feedback loop")
	flag.BoolVar(&search, "search", false, "Search all network phase orderings")
	flag.BoolVar(&ascii, "a", false, "ASCII tape mode")
	flag.StringVar(&lang, "l", "", "Message language, default from host locale (error names keep the host locale)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.For(lang)
	}

	cfg := &config.Config{}
	if len(configPath) != 0 {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("%v: %v", configPath, err)
		}
	}

	// Command line settings override the configuration.
	if len(programPath) == 0 {
		programPath = cfg.Resolve(cfg.Program.Path)
	}
	if len(scriptPath) == 0 {
		scriptPath = cfg.Resolve(cfg.Script.Path)
	}
	if len(phases) != 0 {
		var err error
		cfg.Network.Phases, err = parsePhases(phases)
		if err != nil {
			log.Fatalf("-n %v: %v", phases, err)
		}
	}
	cfg.Network.Feedback = cfg.Network.Feedback || feedback
	cfg.Cpu.Verbose = cfg.Cpu.Verbose || verbose

	if len(programPath) == 0 {
		log.Fatalf("%v: no program file (-p)", os.Args[0])
	}

	mode, err := selectMode(cfg, scriptPath, search)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	inf, err := os.Open(programPath)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}
	defer inf.Close()

	prog, err := cpu.ParseProgram(inf)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}

	err = cfg.PatchProgram(prog)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	switch mode {
	case RUN_NETWORK:
		err = runNetwork(cfg, prog, search, ouf)
		if err != nil {
			log.Fatal(err)
		}
	case RUN_SCRIPT:
		runScript(cfg, prog, scriptPath, ouf)
	default:
		tape := &io.Tape{Output: ouf, Ascii: ascii}
		if input == "-" {
			tape.Input = os.Stdin
		} else if len(input) != 0 {
			tin, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer tin.Close()
			tape.Input = tin
		}

		emu := emulator.NewEmulator(prog)
		emu.Verbose = cfg.Cpu.Verbose
		emu.Input = tape
		emu.Output = tape
		emu.Reset()
		cfg.Apply(emu.Cpu)

		err = emu.RunToHalt()
		if err != nil {
			log.Fatal(err)
		}
	}
}

// runNetwork runs, or searches the phase orderings of, the configured
// network, and writes the resulting signal.
func runNetwork(cfg *config.Config, prog *cpu.Program, search bool, ouf stdio.Writer) (err error) {
	net := emulator.NewNetwork(prog, cfg.Network.Phases, cfg.Network.Feedback)
	net.Verbose = cfg.Cpu.Verbose
	net.Setup = cfg.Configure

	if search {
		var best int64
		var order []int64
		best, order, err = net.Search(cfg.Network.Signal)
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(ouf, "%d %v\n", best, order)
		return
	}

	signal, err := net.Run(cfg.Network.Signal)
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(ouf, signal)
	return
}

func runScript(cfg *config.Config, prog *cpu.Program, scriptPath string, ouf *os.File) {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Fatalf("%v: %v", scriptPath, err)
	}

	cp := prog.NewCpu()
	cfg.Apply(cp)

	sc := script.NewScript(filepath.Base(scriptPath), source)
	sc.Verbose = cfg.Cpu.Verbose
	err = sc.Run(cp)
	if err != nil {
		log.Fatal(err)
	}

	// Values the script did not consume.
	tape := &io.Tape{Output: ouf}
	for _, value := range cp.Drain() {
		err = tape.Send(value)
		if err != nil {
			log.Fatal(err)
		}
	}
}
