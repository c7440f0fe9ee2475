// Package upload converts an ELF into a V5 program and places it on an
// sdcard image.
package upload

import (
	"bufio"
	"debug/elf"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/buildkite/shellwords"

	"github.com/vexide/vexide/tools/sdcard"
)

const usageString = `ELF to V5 program converter.

Usage: %s [flags] <elffile>

`

var (
	flags = flag.NewFlagSet("upload", flag.ExitOnError)

	infile string
	slot   = flags.Int("slot", 1, "program slot on the brain, 1-8")
	name   = flags.String("name", "", "program name, defaults to the file name")
	descr  = flags.String("description", "made with v5go", "program description")
	image  = flags.String("image", "", "sdcard image to place the program on")
	run    = flags.String("run", "", "run the program binary with command")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "upload")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() == 1 {
		infile = flags.Arg(0)
	} else {
		flags.Usage()
		os.Exit(1)
	}
	if *slot < 1 || *slot > 8 {
		log.Fatalln("slot must be between 1 and 8")
	}

	elffile, err := elf.Open(infile)
	if err != nil {
		log.Fatalln(err)
	}
	defer elffile.Close()

	bin, err := objcopy(elffile)
	if err != nil {
		log.Fatalln("objcopy:", err)
	}

	progname := *name
	if progname == "" {
		progname = strings.TrimSuffix(infile, ".elf")
	}

	outfile := strings.TrimSuffix(infile, ".elf") + ".bin"
	if err := os.WriteFile(outfile, bin.Bytes(), 0o644); err != nil {
		log.Fatalln(err)
	}

	if *image != "" {
		if err := place(*image, *slot, progname, *descr, bin.Bytes()); err != nil {
			log.Fatalln("place:", err)
		}
	}

	if *run != "" {
		runProgram(*run, outfile)
	}
}

// place writes the program binary and its slot metadata onto the sdcard
// image, creating the image if it does not exist.
func place(imgpath string, slot int, name, descr string, bin []byte) error {
	d, fs, err := sdcard.Open(imgpath)
	if os.IsNotExist(err) {
		d, fs, err = sdcard.Create(imgpath, sdcard.DefaultSize)
	}
	if err != nil {
		return err
	}
	defer d.Close()

	binpath, inipath := slotFiles(slot)
	if err := sdcard.WriteFile(fs, binpath, bin); err != nil {
		return err
	}
	return sdcard.WriteFile(fs, inipath, []byte(slotIni(slot, name, descr)))
}

// runProgram executes the binary with the given command, typically a
// simulator, and relays its output until it reports PASS or FAIL.
func runProgram(cmdline, binpath string) {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		log.Fatal("run:", err)
	}
	args = append(args, binpath)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatal("open stdout:", err)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)

	if err := cmd.Start(); err != nil {
		log.Fatal("start command:", err)
	}

	go func() {
		<-sigintr
		stdout.Close()
		cmd.Process.Kill()
	}()

	code := 0
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		log.Println(line)
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			fallthrough
		case line == "FAIL":
			code = 1
		}
	}
	cmd.Wait()
	os.Exit(code)
}
