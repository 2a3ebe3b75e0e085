package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	lispy "github.com/masahitojp/lispy3"
	"github.com/masahitojp/lispy3/internal/debug"
	"github.com/masahitojp/lispy3/internal/transcript"
)

const (
	appName     = "lispy"
	historyFile = ".lispy_history"
	promptMain  = "lispy> "
	promptCont  = "...    "
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "mcp":
		os.Exit(cmdMCP(os.Args[2:]))
	case "version":
		fmt.Println(lispy.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`lispy %s

Usage:
  %s [repl] [flags]             Start the REPL (default).
  %s run [flags] <file>         Evaluate a file, printing each non-void result.
  %s eval [flags] <expr>        Evaluate an expression and print the result.
  %s mcp [flags]                Serve the interpreter as an MCP tool over stdio.
  %s version                    Print the version.

Flags (all subcommands):
  -trace              Log every procedure application to stderr.
  -max-depth N        Fail with DepthExceeded past N nested evaluations ($LISPY_MAX_DEPTH).
  -timeout D          Per top-level expression deadline, e.g. 2s ($LISPY_TIMEOUT).
  -transcript PATH    Record evaluations in a SQLite file ($LISPY_TRANSCRIPT).

`, lispy.Version, appName, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// configuration
// -----------------------------------------------------------------------------

type config struct {
	history    string
	transcript string
	timeout    time.Duration
	maxDepth   int
	trace      bool
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}

func defaultHistory() string {
	home, _ := os.UserHomeDir()
	return getenv("LISPY_HISTORY", filepath.Join(home, historyFile))
}

// bindFlags registers the shared flags on fs with environment defaults.
func bindFlags(fs *flag.FlagSet, defTimeout time.Duration) *config {
	c := &config{history: defaultHistory()}
	fs.BoolVar(&c.trace, "trace", false, "log every procedure application")
	fs.IntVar(&c.maxDepth, "max-depth", getenvInt("LISPY_MAX_DEPTH", 0), "maximum evaluation depth (0 = unlimited)")
	fs.DurationVar(&c.timeout, "timeout", getenvDuration("LISPY_TIMEOUT", defTimeout), "deadline per top-level expression (0 = none)")
	fs.StringVar(&c.transcript, "transcript", getenv("LISPY_TRANSCRIPT", ""), "SQLite transcript path")
	return c
}

func (c *config) interpreter() *lispy.Interpreter {
	opts := []lispy.Option{lispy.WithMaxDepth(c.maxDepth)}
	if c.trace {
		opts = append(opts, lispy.WithTrace(log.Print))
	} else {
		debug.SetLogger(nil)
	}
	return lispy.NewInterpreter(opts...)
}

// openTranscript returns nil when no transcript is configured.
func (c *config) openTranscript() (*transcript.Store, error) {
	if c.transcript == "" {
		return nil, nil
	}
	return transcript.Open(c.transcript)
}

// -----------------------------------------------------------------------------
// evaluation shared by every front-end
// -----------------------------------------------------------------------------

// evalTopLevel reads src and evaluates its top-level expressions in order,
// each under its own deadline. visit sees every expression that evaluated.
// Nothing is evaluated when src does not read cleanly.
func evalTopLevel(ctx context.Context, ip *lispy.Interpreter, src string, timeout time.Duration, visit func(x, v lispy.Value)) error {
	xs, err := lispy.ReadAll(src)
	if err != nil {
		return err
	}
	for _, x := range xs {
		ectx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			ectx, cancel = context.WithTimeout(ctx, timeout)
		}
		v, err := ip.EvalContext(ectx, x)
		cancel()
		if err != nil {
			return err
		}
		if visit != nil {
			visit(x, v)
		}
	}
	return nil
}

// record stores one evaluation in the transcript; failures only get logged.
func record(ctx context.Context, store *transcript.Store, input string, v lispy.Value, err error) {
	if store == nil {
		return
	}
	out, kind := lispy.Print(v), transcript.KindValue
	if err != nil {
		out, kind = err.Error(), transcript.KindError
	}
	if rerr := store.Record(ctx, input, out, kind); rerr != nil {
		log.Printf("%v", rerr)
	}
}

// runSource evaluates src, writing each non-void result to w.
func runSource(ctx context.Context, ip *lispy.Interpreter, store *transcript.Store, src string, timeout time.Duration, w io.Writer) error {
	err := evalTopLevel(ctx, ip, src, timeout, func(x, v lispy.Value) {
		record(ctx, store, lispy.Print(x), v, nil)
		if !v.IsVoid() {
			fmt.Fprintln(w, lispy.Print(v))
		}
	})
	if err != nil {
		record(ctx, store, strings.TrimSpace(src), lispy.Void, err)
	}
	return err
}

// -----------------------------------------------------------------------------
// run / eval
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfg := bindFlags(fs, 0)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [flags] <file>\n", appName)
		return 2
	}

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	return runWith(cfg, string(src))
}

func cmdEval(args []string) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	cfg := bindFlags(fs, 0)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s eval [flags] <expr>\n", appName)
		return 2
	}
	return runWith(cfg, strings.Join(fs.Args(), " "))
}

func runWith(cfg *config, src string) int {
	store, err := cfg.openTranscript()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if store != nil {
		defer store.Close()
	}

	ip := cfg.interpreter()
	if err := runSource(context.Background(), ip, store, src, cfg.timeout, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
