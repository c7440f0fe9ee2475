package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vexide/vexide/tools/image"
	"github.com/vexide/vexide/tools/sdcard"
	"github.com/vexide/vexide/tools/terminal"
	"github.com/vexide/vexide/tools/upload"
)

const usageString = `v5go is a tool for development of V5 brain programs.

Usage:

	%s <command> [arguments]

The commands are:

	upload   convert elf to a V5 program and place it on an sdcard image
	terminal open a serial terminal to the brain or a simulator
	sdcard   create and inspect sdcard images
	image    convert images for the brain screen
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "upload":
		upload.Main(flag.Args())
	case "terminal":
		terminal.Main(flag.Args())
	case "sdcard":
		sdcard.Main(flag.Args())
	case "image":
		image.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
