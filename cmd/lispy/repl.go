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
	"sync"
	"syscall"

	"github.com/peterh/liner"

	lispy "github.com/masahitojp/lispy3"
)

var (
	banner   = fmt.Sprintf("lispy %s REPL\nCtrl+C cancels input or a running evaluation, Ctrl+D exits. Type :quit to exit.", lispy.Version)
	helpText = `
REPL commands:
  :quit     Exit the REPL
  :reset    Forget every definition
  :help     Show this text
`
)

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	cfg := bindFlags(fs, 0)
	fs.StringVar(&cfg.history, "history", cfg.history, "history file ($LISPY_HISTORY)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := cfg.openTranscript()
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	// Cleanup runs once, on return or on SIGTERM/SIGHUP, last added first.
	var cl cleanup
	defer cl.run()
	if store != nil {
		cl.add(func() { store.Close() })
	}

	fmt.Println(banner)

	ln := liner.NewLiner()
	cl.add(func() { ln.Close() })
	ln.SetCtrlCAborts(true)

	cl.add(func() {
		if f, err := os.Create(cfg.history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	})
	if f, err := os.Open(cfg.history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := cfg.interpreter()
	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeWord(line, pos, append(lispy.Keywords(), ip.Names()...))
	})

	// While the prompt is active liner reads Ctrl+C itself. A SIGINT can
	// only arrive during evaluation, where it cancels the running expression.
	var (
		mu     sync.Mutex
		cancel context.CancelFunc
	)
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	done := make(chan struct{})
	defer close(done)
	go watchSignals(sigc, done,
		func() {
			mu.Lock()
			if cancel != nil {
				cancel()
			}
			mu.Unlock()
		},
		func() {
			// liner blocks in Prompt with no way to wake it; clean up here.
			cl.run()
			os.Exit(130)
		},
	)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				fmt.Println("Goodbye!")
				return 0
			case ":reset":
				ip.Reset()
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Printf("unknown command. Type :help for a list.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		ctx, stop := context.WithCancel(context.Background())
		mu.Lock()
		cancel = stop
		mu.Unlock()

		err := evalTopLevel(ctx, ip, code, cfg.timeout, func(x, v lispy.Value) {
			record(ctx, store, lispy.Print(x), v, nil)
			if !v.IsVoid() {
				fmt.Println(blue(lispy.Print(v)))
			}
		})

		mu.Lock()
		cancel = nil
		mu.Unlock()
		stop()

		if err != nil {
			record(context.Background(), store, code, lispy.Void, err)
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}

	fmt.Println("Goodbye!")
	return 0
}

// watchSignals calls interrupt for every SIGINT and terminate for any other
// signal, after which it stops. It also stops when done is closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, interrupt, terminate func()) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigc:
			if sig == os.Interrupt {
				interrupt()
				continue
			}
			terminate()
			return
		}
	}
}

// cleanup is a run-once stack of shutdown steps.
type cleanup struct {
	mu   sync.Mutex
	once sync.Once
	fns  []func()
}

func (c *cleanup) add(fn func()) {
	c.mu.Lock()
	c.fns = append(c.fns, fn)
	c.mu.Unlock()
}

func (c *cleanup) run() {
	c.once.Do(func() {
		c.mu.Lock()
		fns := c.fns
		c.mu.Unlock()
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	})
}

// readByParseProbe collects lines until they read as complete expressions,
// switching to the continuation prompt while the input is incomplete. ok is
// false on EOF. A Ctrl+C at the prompt discards the pending input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := lispy.ReadAll(src); lispy.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// completeWord completes the word under the cursor against names. A word
// ends at whitespace or a parenthesis. pos counts runes.
func completeWord(line string, pos int, names []string) (head string, completions []string, tail string) {
	r := []rune(line)
	if pos > len(r) {
		pos = len(r)
	}
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n()", r[start-1]) {
		start--
	}
	prefix := string(r[start:pos])

	seen := map[string]bool{}
	for _, n := range names {
		if strings.HasPrefix(n, prefix) && !seen[n] {
			seen[n] = true
			completions = append(completions, n)
		}
	}
	sort.Strings(completions)
	return string(r[:start]), completions, string(r[pos:])
}
