package sdcard

import (
	"flag"
	"fmt"
	"os"
)

func must[T any](ret T, err error) T {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return ret
}

const usageString = `SD-card image utility.

Usage:

	%s <command> [arguments]

The commands are:

	mk <image>			create an empty FAT32 image
	ls <image> [dir]		list files
	get <image> <path> <file>	copy a file out of the image
	put <image> <file> <path>	copy a file into the image
	mount <image> <dir>		serve the image via fuse
`

var (
	flags = flag.NewFlagSet("sdcard", flag.ExitOnError)

	size = flags.Int64("size", DefaultSize, "image size in bytes for mk")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "sdcard")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}

	switch flags.Arg(0) {
	case "mk":
		if flags.NArg() != 2 {
			flags.Usage()
			os.Exit(1)
		}
		d, _, err := Create(flags.Arg(1), *size)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		d.Close()
	case "ls":
		d, fs, err := Open(flags.Arg(1))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer d.Close()
		dir := "/"
		if flags.NArg() > 2 {
			dir = flags.Arg(2)
		}
		must(0, list(fs, dir, os.Stdout))
	case "get":
		if flags.NArg() != 4 {
			flags.Usage()
			os.Exit(1)
		}
		d, fs, err := Open(flags.Arg(1))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer d.Close()
		data := must(ReadFile(fs, flags.Arg(2)))
		must(0, os.WriteFile(flags.Arg(3), data, 0o644))
	case "put":
		if flags.NArg() != 4 {
			flags.Usage()
			os.Exit(1)
		}
		d, fs, err := Open(flags.Arg(1))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer d.Close()
		data := must(os.ReadFile(flags.Arg(2)))
		must(0, WriteFile(fs, flags.Arg(3), data))
	case "mount":
		if flags.NArg() != 3 {
			flags.Usage()
			os.Exit(1)
		}
		must(0, mount(flags.Arg(1), flags.Arg(2)))
	default:
		fmt.Fprintf(flags.Output(), "unknown command: %s\n", flags.Arg(0))
		flags.Usage()
		os.Exit(1)
	}
}
