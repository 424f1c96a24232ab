package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/timer-endpoints/internal/logger"
	"github.com/oshokin/timer-endpoints/internal/service/common"
	"github.com/oshokin/timer-endpoints/internal/service/endpoint"
)

// Console is an interactive operator shell over the registered endpoints.
type Console struct {
	// registry resolves endpoint names.
	registry *endpoint.Registry
	// sessions holds one open session per endpoint, opened on first use.
	sessions map[string]*endpoint.Session
	// out receives all command output.
	out io.Writer
}

// New creates a console writing to out.
func New(registry *endpoint.Registry, out io.Writer) *Console {
	return &Console{
		registry: registry,
		sessions: make(map[string]*endpoint.Session),
		out:      out,
	}
}

// Run starts the interactive command loop and returns when the user quits,
// input ends or ctx is canceled.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}

	defer rl.Close()

	// Keep log lines from clobbering the prompt.
	c.out = rl.Stdout()
	logger.SetLogger(logger.NewWithWriter(nil, rl.Stdout()))
	ctx = logger.ToContext(ctx, logger.Logger().Named("console"))

	// Attribute every session opened from this console to the operator.
	if actor, err := common.DetectActor(); err == nil {
		ctx = logger.WithFields(ctx, actor.KV()...)
	} else {
		logger.WarnKV(ctx, "Failed to detect operator", "error", err)
	}

	defer c.closeSessions()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt.
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}

			_, _ = fmt.Fprintln(c.out, "Exiting...")
			cancel()

			return nil
		}

		if quit := c.Exec(ctx, line); quit {
			cancel()

			return nil
		}
	}
}

// Exec runs a single console line and reports whether the console should quit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "list", "ls":
		c.cmdList()
	case "write", "w":
		c.cmdWrite(ctx, args)
	case "read", "r":
		c.cmdRead(ctx, args)
	case "dump", "d":
		c.cmdDump(args)
	case "level":
		c.cmdLevel(args)
	case "quit", "exit", "q":
		return true
	default:
		// "<endpoint> <command>" is a shorthand for write.
		if _, err := c.registry.Lookup(parts[0]); err == nil {
			c.cmdWrite(ctx, parts)

			return false
		}

		c.printf("Unknown command: %s (type 'help')\n", parts[0])
	}

	return false
}

func (c *Console) printHelp() {
	c.printf(`Commands:
  list                        show endpoints and their state
  write <endpoint> <command>  send a command line, e.g. "write countdown l10"
  <endpoint> <command>        same as write
  read <endpoint>             read the status once after a write
  dump <endpoint>             show the raw timer state
  level <level>               set the log level (debug, info, warn, error)
  help                        show this help
  quit                        leave the console

Timer commands: s=start r=reset l<seconds>=load p=pause c=continue
`)
}

func (c *Console) cmdList() {
	table := tablewriter.NewWriter(c.out)
	table.Header("Endpoint", "Kind", "State")

	for _, ep := range c.registry.Endpoints() {
		_ = table.Append([]string{ //nolint:errcheck // Rows of plain strings cannot fail.
			ep.Name(),
			ep.Kind().String(),
			ep.Snapshot().State.String(),
		})
	}

	if err := table.Render(); err != nil {
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) cmdWrite(ctx context.Context, args []string) {
	if len(args) < 2 {
		c.printf("Usage: write <endpoint> <command>\n")

		return
	}

	session, err := c.session(ctx, args[0])
	if err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	line := strings.Join(args[1:], " ") + "\n"
	if _, err := io.WriteString(session, line); err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	c.printf("ok\n")
}

func (c *Console) cmdRead(ctx context.Context, args []string) {
	if len(args) != 1 {
		c.printf("Usage: read <endpoint>\n")

		return
	}

	session, err := c.session(ctx, args[0])
	if err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	data, err := io.ReadAll(session)
	if err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	if len(data) == 0 {
		c.printf("(no new status, write a command first)\n")

		return
	}

	c.printf("%s", data)
}

func (c *Console) cmdDump(args []string) {
	if len(args) != 1 {
		c.printf("Usage: dump <endpoint>\n")

		return
	}

	ep, err := c.registry.Lookup(args[0])
	if err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	data, err := yaml.Marshal(ep.Snapshot())
	if err != nil {
		c.printf("Error: %v\n", err)

		return
	}

	c.printf("%s", data)
}

func (c *Console) cmdLevel(args []string) {
	if len(args) != 1 {
		c.printf("Current log level: %s\n", logger.Level())

		return
	}

	level, ok := logger.ParseLogLevel(args[0])
	if !ok {
		c.printf("Unknown log level: %s\n", args[0])

		return
	}

	logger.SetLevel(level)
	c.printf("Log level set to %s\n", level)
}

// session returns the console's session on the named endpoint, opening it on first use.
func (c *Console) session(ctx context.Context, name string) (*endpoint.Session, error) {
	if s, ok := c.sessions[name]; ok {
		return s, nil
	}

	ep, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	s := ep.Open(ctx)
	c.sessions[name] = s

	return s, nil
}

func (c *Console) closeSessions() {
	for name, s := range c.sessions {
		_ = s.Close() //nolint:errcheck // Closing a session cannot fail.

		delete(c.sessions, name)
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
