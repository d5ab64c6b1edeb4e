// Package console drives a [lfucache.Counter] from textual commands,
// either read from an input stream or generated at random,
// and renders each result along with the cache contents.
package console

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/djdv/go-lfucache"
)

type (
	// Mode selects where commands come from.
	Mode string
	// Config holds the parameters of a [Run].
	Config struct {
		Mode          Mode
		Capacity      int
		EvictFraction float64
		// Operations is the number of commands generated in [ModeRandom].
		Operations int
		Seed       int64
	}
	command struct {
		name string
		args []int
	}
	session struct {
		counter *lfucache.Counter[int, int]
		out     io.Writer
	}
	constError string
)

const (
	// ModeManual reads one command per line.
	ModeManual Mode = "manual"
	// ModeRandom generates commands from a seeded source.
	ModeRandom Mode = "random"
)

const (
	// ErrUnknownCommand is reported for unrecognized command names.
	ErrUnknownCommand = constError("unknown command")
	// ErrArguments is reported for missing, extra, or malformed arguments.
	ErrArguments = constError("invalid arguments")
	// ErrMode may be returned from [Config.Validate].
	ErrMode = constError("invalid mode")
)

// Command names.
const (
	cmdGet   = "get"
	cmdSet   = "set"
	cmdMGet  = "mget"
	cmdMSet  = "mset"
	cmdIncr  = "incr"
	cmdDecr  = "decr"
	cmdPrint = "print"
	cmdQuit  = "quit"
)

// Ranges used by [ModeRandom].
const (
	randomKeys     = 10
	randomValues   = 200 // Centered on 0.
	randomMaxBatch = 10
)

const usage = "commands: get K | set K V | mget K... | mset K V [K V]... | incr K D | decr K D | print | quit"

func (errStr constError) Error() string { return string(errStr) }

// Validate reports the first invalid field of cfg.
// Cache parameters are validated by the cache itself.
func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModeManual:
		return nil
	case ModeRandom:
		if cfg.Operations < 0 {
			return fmt.Errorf("%w: operation count must be >=0 but %d was requested",
				ErrArguments, cfg.Operations)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q must be %q or %q",
			ErrMode, cfg.Mode, ModeManual, ModeRandom)
	}
}

// Run creates a cache from cfg and executes commands against it until
// input is exhausted (or a quit command is read), or the requested
// number of random operations have run.
// Command errors are written to out and do not stop the session.
func Run(cfg Config, in io.Reader, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	counter, err := lfucache.NewCounter[int, int](cfg.Capacity, cfg.EvictFraction)
	if err != nil {
		return err
	}
	s := &session{
		counter: counter,
		out:     out,
	}
	if cfg.Mode == ModeRandom {
		rng := rand.New(rand.NewSource(cfg.Seed))
		return s.runRandom(rng, cfg.Operations)
	}
	return s.runManual(in)
}

func (s *session) runManual(in io.Reader) error {
	if _, err := fmt.Fprintln(s.out, usage); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			if _, err := fmt.Fprintf(s.out, "error: %v\n", err); err != nil {
				return err
			}
			continue
		}
		if cmd.name == cmdQuit {
			break
		}
		if err := s.execute(cmd); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *session) runRandom(rng *rand.Rand, operations int) error {
	for range operations {
		if err := s.execute(randomCommand(rng)); err != nil {
			return err
		}
	}
	return nil
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	cmd := command{
		name: strings.ToLower(fields[0]),
		args: make([]int, len(fields)-1),
	}
	for i, field := range fields[1:] {
		arg, err := strconv.Atoi(field)
		if err != nil {
			return command{}, fmt.Errorf("%w: %s: %q is not an integer",
				ErrArguments, cmd.name, field)
		}
		cmd.args[i] = arg
	}
	if err := cmd.validate(); err != nil {
		return command{}, err
	}
	return cmd, nil
}

func (cmd command) validate() error {
	var (
		argc = len(cmd.args)
		ok   bool
	)
	switch cmd.name {
	case cmdGet:
		ok = argc == 1
	case cmdSet, cmdIncr, cmdDecr:
		ok = argc == 2
	case cmdMGet:
		ok = argc >= 1
	case cmdMSet:
		ok = argc >= 2 && argc%2 == 0
	case cmdPrint, cmdQuit:
		ok = argc == 0
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
	}
	if !ok {
		return fmt.Errorf("%w: %s: got %d", ErrArguments, cmd.name, argc)
	}
	return nil
}

func randomCommand(rng *rand.Rand) command {
	var (
		key   = func() int { return rng.Intn(randomKeys) }
		value = func() int { return rng.Intn(randomValues) - randomValues/2 }
		batch = func() int { return rng.Intn(randomMaxBatch) + 1 }
	)
	switch rng.Intn(6) {
	case 0:
		return command{name: cmdGet, args: []int{key()}}
	case 1:
		return command{name: cmdSet, args: []int{key(), value()}}
	case 2:
		args := make([]int, 0, randomMaxBatch*2)
		for range batch() {
			args = append(args, key(), value())
		}
		return command{name: cmdMSet, args: args}
	case 3:
		args := make([]int, batch())
		for i := range args {
			args[i] = key()
		}
		return command{name: cmdMGet, args: args}
	case 4:
		return command{name: cmdIncr, args: []int{key(), value()}}
	default:
		return command{name: cmdDecr, args: []int{key(), value()}}
	}
}

// execute applies cmd, then writes its result
// followed by the cache contents.
func (s *session) execute(cmd command) error {
	var (
		counter = s.counter
		args    = cmd.args
		result  strings.Builder
	)
	switch cmd.name {
	case cmdGet:
		value, ok := counter.Get(args[0])
		fmt.Fprintf(&result, "GET %d: %s\n", args[0], formatValue(value, ok))
	case cmdSet:
		counter.Set(args[0], args[1])
		fmt.Fprintf(&result, "SET %d %d\n", args[0], args[1])
	case cmdMGet:
		result.WriteString("MGET")
		for _, lookup := range counter.GetMany(args...) {
			fmt.Fprintf(&result, " (%d, %s)",
				lookup.Key, formatValue(lookup.Value, lookup.Found))
		}
		result.WriteByte('\n')
	case cmdMSet:
		pairs := make([]lfucache.Pair[int, int], 0, len(args)/2)
		result.WriteString("MSET")
		for i := 0; i < len(args); i += 2 {
			pair := lfucache.Pair[int, int]{Key: args[i], Value: args[i+1]}
			pairs = append(pairs, pair)
			fmt.Fprintf(&result, " (%d, %d)", pair.Key, pair.Value)
		}
		counter.SetMany(pairs...)
		result.WriteByte('\n')
	case cmdIncr:
		sum := counter.Incr(args[0], args[1])
		fmt.Fprintf(&result, "INCR %d by %d: %d\n", args[0], args[1], sum)
	case cmdDecr:
		difference := counter.Decr(args[0], args[1])
		fmt.Fprintf(&result, "DECR %d by %d: %d\n", args[0], args[1], difference)
	case cmdPrint:
		// Only the cache contents.
	}
	if _, err := io.WriteString(s.out, result.String()); err != nil {
		return err
	}
	return counter.Fprint(s.out)
}

func formatValue(value int, found bool) string {
	if !found {
		return "nil"
	}
	return strconv.Itoa(value)
}
