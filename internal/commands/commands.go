package commands

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// ErrUnknown is returned by Execute for a name nobody registered.
var ErrUnknown = errors.New("unknown command")

// Command is one console verb. Its flags start from their defaults on every run.
type Command struct {
	Name    string
	FlagSet *flag.FlagSet
	Run     func() error
}

// reset puts every flag back to its default value.
func (c *Command) reset() {
	c.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
}

// Registry maps console verbs to commands.
type Registry struct {
	cmds map[string]*Command
}

func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command under name, replacing any earlier one.
// run is called after fs has parsed the rest of the line.
func (r *Registry) Register(name string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse reports whether line is a console command and splits what follows "cmd ".
// Double quotes group words, so `cmd shot -o "my shots/a.png"` yields three args.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	var cur strings.Builder
	quoted, inArg := false, false
	for _, r := range line[len(prefix):] {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case r == ' ' && !quoted:
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, true
}

// Execute runs args[0] with the remaining args as its flags and positionals.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand, try: cmd help")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, args[0])
	}
	cmd.reset()
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return cmd.Run()
}
