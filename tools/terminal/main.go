// Package terminal opens an interactive serial terminal to the brain or to
// a simulator running the program under a pty.
package terminal

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"

	"github.com/vexide/vexide/drivers/link"
)

const usageString = `Serial terminal.

Usage: %s [flags] [device]

Connects to the given serial device, or spawns a command under a pty with
-run and connects to that instead.

`

var (
	flags = flag.NewFlagSet("terminal", flag.ExitOnError)

	run      = flags.String("run", "", "run command under a pty instead of opening a device")
	linkMode = flags.Bool("link", false, "decode radio frames instead of raw bytes")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "terminal")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	var port io.ReadWriter
	switch {
	case *run != "":
		cmdargs, err := shellwords.Split(*run)
		if err != nil {
			log.Fatal("run:", err)
		}
		p, err := pty.New()
		if err != nil {
			log.Fatal("pty:", err)
		}
		defer p.Close()
		cmd := p.Command(cmdargs[0], cmdargs[1:]...)
		if err := cmd.Start(); err != nil {
			log.Fatal("start command:", err)
		}
		go func() {
			cmd.Wait()
			os.Exit(0)
		}()
		port = p
	case flags.NArg() == 1:
		f, err := os.OpenFile(flags.Arg(0), os.O_RDWR, 0)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		port = f
	default:
		flags.Usage()
		os.Exit(1)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	go func() {
		<-sigintr
		os.Exit(0)
	}()

	go io.Copy(port, os.Stdin)

	if *linkMode {
		relayFrames(port)
		return
	}
	io.Copy(os.Stdout, port)
}

// relayFrames prints the payload of each radio frame received on port,
// useful when listening to a transmitting robot.
func relayFrames(port io.ReadWriter) {
	rx := link.Open(port, "terminal", link.Receiver)
	buf := make([]byte, link.MaxMessage)
	for {
		n, err := rx.Recv(buf)
		switch err {
		case nil:
			os.Stdout.Write(buf[:n])
			os.Stdout.Write([]byte{'\n'})
		case link.ErrNoData:
			time.Sleep(10 * time.Millisecond)
		case link.ErrChecksum:
			log.Println("terminal:", err)
		default:
			log.Fatal("terminal:", err)
		}
	}
}
