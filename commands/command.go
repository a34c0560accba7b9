// Package commands implements the collsh command table over a Keyspace.
package commands

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/resp"
)

// Handler runs one command. args excludes the command name.
type Handler func(r *Registry, args []string) (resp.Node, error)

// Command documents and dispatches one command. Arity counts the command
// name; a negative arity is a minimum.
type Command struct {
	Name    string
	Args    string
	Summary string
	Group   string
	Arity   int
	handler Handler
}

// Usage returns "NAME args".
func (c *Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

func (c *Command) arityOK(argc int) bool {
	if c.Arity < 0 {
		return argc >= -c.Arity
	}
	return argc == c.Arity
}

// Registry maps command names to handlers.
type Registry struct {
	keyspace *Keyspace
	gatherer prometheus.Gatherer
	commands map[string]*Command
}

// NewRegistry builds the command table over ks. gatherer serves STATS and may
// be nil when metrics are disabled.
func NewRegistry(ks *Keyspace, gatherer prometheus.Gatherer) *Registry {
	r := &Registry{
		keyspace: ks,
		gatherer: gatherer,
		commands: make(map[string]*Command),
	}
	for _, table := range [][]*Command{setCommands, mapCommands, keyCommands, serverCommands} {
		for _, c := range table {
			r.commands[c.Name] = c
		}
	}
	return r
}

// Keyspace returns the keyspace commands run against.
func (r *Registry) Keyspace() *Keyspace {
	return r.keyspace
}

// Lookup finds a command by case-insensitive name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.commands[strings.ToUpper(name)]
	return c, ok
}

// Commands returns every command sorted by group, then name.
func (r *Registry) Commands() []*Command {
	return slices.SortedFunc(maps.Values(r.commands), func(a, b *Command) int {
		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Execute runs argv and returns the reply. Failures are reported as resp.Error
// replies.
func (r *Registry) Execute(argv []string) resp.Node {
	if len(argv) == 0 {
		return resp.Error{Message: "ERR empty command"}
	}
	c, ok := r.Lookup(argv[0])
	if !ok {
		return resp.Error{Message: fmt.Sprintf("ERR unknown command '%s', with args beginning with: %s",
			argv[0], quoteArgs(argv[1:]))}
	}
	if !c.arityOK(len(argv)) {
		return resp.Error{Message: fmt.Sprintf("ERR wrong number of arguments for '%s' command",
			strings.ToLower(c.Name))}
	}
	reply, err := c.handler(r, argv[1:])
	if err != nil {
		log.Logger.Debug("command failed", zap.String("command", c.Name), zap.Error(err))
		return errorReply(err)
	}
	return reply
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	return strings.Join(quoted, " ")
}

var errNotInteger = errors.New("ERR value is not an integer or out of range")

func errorReply(err error) resp.Node {
	switch {
	case errors.Is(err, errWrongType), errors.Is(err, errNotInteger), errors.Is(err, errOverflow):
		return resp.Error{Message: err.Error()}
	case errors.Is(err, cerrors.ErrUnsupportedOperation):
		return resp.Error{Message: "READONLY " + err.Error()}
	default:
		return resp.Error{Message: "ERR " + err.Error()}
	}
}

func parseKey(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

func parseValue(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errNotInteger
	}
	return int32(n), nil
}

func boolReply(b bool) resp.Node {
	if b {
		return resp.Integer{Value: 1}
	}
	return resp.Integer{Value: 0}
}
