package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultCommand = "watch"

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string, s streams) error
}

var commands = map[string]command{
	"watch":     {"live board with countdown, refreshed in the background", runWatch},
	"once":      {"fetch the board once and print it as JSON", runOnce},
	"countdown": {"print the time left in the campaign", runCountdown},
	"region":    {"print a static regional board", runRegion},
	"copy-code": {"copy the referral code to the clipboard", runCopyCode},
	"stats":     {"refresh and print sync metrics", runStats},
	"health":    {"refresh once and report sync health", runHealth},
}

func main() {
	// configure zerolog console output and level
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// load .env
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	name, args := splitCommand(os.Args[1:])

	// signal‐aware context
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, name, args, streams{in: terminalInput(os.Stdin), out: os.Stdout, err: os.Stderr})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		stop()
		log.Fatal().Err(err).Str("command", name).Msg("command failed")
	}
}

// terminalInput returns f only when it is an interactive terminal, so piped or
// redirected stdin never starts a key reader.
func terminalInput(f *os.File) io.Reader {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return f
	}
	return nil
}

// splitCommand picks the subcommand, defaulting to watch when args start with a flag
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return defaultCommand, args
	}
	return args[0], args[1:]
}

func run(ctx context.Context, name string, args []string, s streams) error {
	if name == "help" {
		printUsage(s.out)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		printUsage(s.err)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, args, s)
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: boat [command] [flags]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].usage)
	}
}
