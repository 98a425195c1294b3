package host

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/jr100emu/jr100/jr100"
)

// Monitor puts stdin in raw mode so a single keypress can single-step the
// machine or dump registers, without waiting for Enter. Adapted from
// IntuitionAmiga-IntuitionEngine/terminal_host.go's TerminalHost.
type Monitor struct {
	machine     *jr100.Machine
	fd          int
	nonblockSet bool
	oldState    *term.State
	stopCh      chan struct{}
	done        chan struct{}
	stopped     sync.Once

	// OnPasteKey, if set, is invoked when the operator presses 'p' to
	// paste a BASIC listing from the clipboard.
	OnPasteKey func()
}

// NewMonitor returns a monitor that single-steps the given machine.
func NewMonitor(m *jr100.Machine) *Monitor {
	return &Monitor{
		machine: m,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start puts stdin in raw, non-blocking mode and begins handling keypresses
// in a goroutine: "s" single-steps, "r" dumps registers, "q" stops the
// monitor (the host's own quit key, separate from closing the window).
func (mon *Monitor) Start() error {
	mon.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(mon.fd)
	if err != nil {
		close(mon.done)
		return err
	}
	mon.oldState = oldState

	if err := syscall.SetNonblock(mon.fd, true); err != nil {
		_ = term.Restore(mon.fd, mon.oldState)
		close(mon.done)
		return err
	}
	mon.nonblockSet = true

	go mon.loop()
	return nil
}

func (mon *Monitor) loop() {
	defer close(mon.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-mon.stopCh:
			return
		default:
		}

		n, err := syscall.Read(mon.fd, buf)
		if n > 0 {
			mon.handleKey(buf[0])
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

func (mon *Monitor) handleKey(b byte) {
	switch b {
	case 's':
		if _, err := mon.machine.StepOne(); err != nil {
			fmt.Fprintf(os.Stderr, "\r\nstep error: %v\r\n", err)
		}
	case 'r':
		cpu := mon.machine.CPU
		fmt.Fprintf(os.Stderr, "\r\nA=%02X B=%02X IX=%04X PC=%04X SP=%04X CC=%02X\r\n",
			cpu.A, cpu.B, cpu.IX, cpu.PC, cpu.SP, cpu.CC)
	case 'p':
		if mon.OnPasteKey != nil {
			mon.OnPasteKey()
		}
	case 'q':
		// Stop waits for this read loop to exit, so it must run on
		// another goroutine.
		go mon.Stop()
	}
}

// Stop restores stdin to its original mode and terminates the read loop.
func (mon *Monitor) Stop() {
	mon.stopped.Do(func() {
		close(mon.stopCh)
	})
	<-mon.done
	if mon.nonblockSet {
		_ = syscall.SetNonblock(mon.fd, false)
	}
	if mon.oldState != nil {
		_ = term.Restore(mon.fd, mon.oldState)
	}
}
