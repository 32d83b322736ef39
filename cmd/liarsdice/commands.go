package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/cbodonnell/liarsdice/pkg/game"
	"github.com/cbodonnell/liarsdice/pkg/log"
	"github.com/cbodonnell/liarsdice/pkg/table"
)

var errUnknownCommand = errors.New("unknown command")

type commandKind int

const (
	commandCall commandKind = iota
	commandState
	commandNewGame
	commandQuit
)

type command struct {
	kind commandKind
	call game.Call
}

// parseCommand parses one input line:
//
//	call <count> <face>
//	bullshit
//	spot-on
//	state
//	new-game
//	quit
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errUnknownCommand
	}

	switch fields[0] {
	case "call":
		if len(fields) != 3 {
			return command{}, errors.New("usage: call <count> <face>")
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("invalid count %q: %w", fields[1], err)
		}
		face, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return command{}, fmt.Errorf("invalid face %q: %w", fields[2], err)
		}
		return command{kind: commandCall, call: game.Increase(count, dice.Die(face))}, nil
	case "bullshit":
		return command{kind: commandCall, call: game.Bullshit()}, nil
	case "spot-on":
		return command{kind: commandCall, call: game.SpotOn()}, nil
	case "state":
		return command{kind: commandState}, nil
	case "new-game":
		return command{kind: commandNewGame}, nil
	case "quit", "exit":
		return command{kind: commandQuit}, nil
	default:
		return command{}, fmt.Errorf("%w: %s", errUnknownCommand, fields[0])
	}
}

type errorLine struct {
	Error string `json:"error"`
}

type stateLine struct {
	State table.Snapshot `json:"state"`
}

// driver plays every call on behalf of whoever's turn it is, so one terminal
// seats all players.
type driver struct {
	table  *table.Table
	out    *json.Encoder
	logger *log.Logger
}

func newDriver(t *table.Table, out io.Writer, logger *log.Logger) *driver {
	return &driver{
		table:  t,
		out:    json.NewEncoder(out),
		logger: logger,
	}
}

// run reads commands from in until quit or end of input. Events produced by
// each command are written as JSON lines.
func (d *driver) run(in io.Reader) error {
	if err := d.flush(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := parseCommand(line)
		if err == nil && cmd.kind == commandQuit {
			return nil
		}
		if err == nil {
			err = d.execute(cmd)
		}
		if err != nil {
			d.logger.Debug("Command %q rejected: %v", line, err)
			if err := d.out.Encode(errorLine{Error: err.Error()}); err != nil {
				return err
			}
		}
		if err := d.flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (d *driver) execute(cmd command) error {
	switch cmd.kind {
	case commandState:
		return d.out.Encode(stateLine{State: d.table.Snapshot()})
	case commandNewGame:
		return d.table.Start()
	case commandCall:
		current, ok := d.table.CurrentPlayer()
		if !ok {
			return fmt.Errorf("%w: no game in progress", game.ErrWrongPhase)
		}
		_, err := d.table.Act(current, cmd.call)
		return err
	default:
		return errUnknownCommand
	}
}

func (d *driver) flush() error {
	for _, event := range d.table.Events() {
		if err := d.out.Encode(event); err != nil {
			return fmt.Errorf("failed to write event %d: %w", event.Sequence, err)
		}
	}
	return nil
}
