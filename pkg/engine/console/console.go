// Package console implements a line-oriented debugging REPL for the
// engine.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hexmind/hexcore/pkg/engine"
	"github.com/hexmind/hexcore/pkg/hexboard"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver drives an Engine from a line-oriented input/output pair.
type Driver struct {
	iox.AsyncCloser

	e   *engine.Engine
	out chan<- string

	active  atomic.Bool
	stop    chan struct{}
	stopGen int32
}

// NewDriver wires a driver to an already-constructed engine.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v", d.e.Name())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}
			cmd, args := strings.ToLower(parts[0]), parts[1:]

			switch cmd {
			case "reset", "r":
				d.ensureInactive(ctx)
				d.e.Reset(ctx)
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)
				if err := d.e.TakeBack(ctx); err != nil {
					d.out <- err.Error()
				}
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "go", "g":
				d.ensureInactive(ctx)
				d.active.Store(true)
				d.stop = make(chan struct{})
				stop := d.stop

				go func() {
					m, pv, err := d.e.Move(ctx, stop)
					if d.active.CompareAndSwap(true, false) {
						if err != nil {
							d.out <- fmt.Sprintf("move failed: %v", err)
						} else {
							d.out <- fmt.Sprintf("bestmove %v (%v)", m, pv)
						}
						d.printBoard(ctx)
					}
				}()

			case "halt", "stop":
				if d.active.CompareAndSwap(true, false) && d.stop != nil {
					close(d.stop)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore

			default:
				// Assume a move if not a recognized command.
				d.ensureInactive(ctx)
				if m, err := parseMove(cmd, args); err != nil {
					d.out <- fmt.Sprintf("invalid move: %v", line)
				} else if err := d.e.ApplyMove(ctx, m); err != nil {
					d.out <- fmt.Sprintf("invalid move: %v", err)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.CompareAndSwap(true, false) && d.stop != nil {
		close(d.stop)
	}
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) printBoard(ctx context.Context) {
	b := d.e.Board()
	d.out <- ""
	d.out <- b.String()
	d.out <- ""
}

// parseMove accepts a move as two integer tokens, "row col"; a single
// token (such as "rXcY" or the "c3" form Move.String prints) is not
// recognized.
func parseMove(cmd string, args []string) (hexboard.Move, error) {
	if len(args) == 1 {
		r, err1 := strconv.Atoi(cmd)
		c, err2 := strconv.Atoi(args[0])
		if err1 == nil && err2 == nil {
			return hexboard.Move{Row: r, Col: c}, nil
		}
	}
	return hexboard.Move{}, fmt.Errorf("console: unrecognized move %q", cmd)
}
