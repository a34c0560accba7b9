package commands

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/prometheus/common/expfmt"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/resp"
)

var keyCommands = []*Command{
	{Name: "DEL", Args: "key [key ...]", Summary: "Delete keys", Group: "keyspace", Arity: -2, handler: delCommand},
	{Name: "KEYS", Args: "pattern", Summary: "List keys matching a glob pattern", Group: "keyspace", Arity: 2, handler: keysCommand},
	{Name: "TYPE", Args: "key", Summary: "Name the collection type stored at a key", Group: "keyspace", Arity: 2, handler: typeCommand},
	{Name: "FREEZE", Args: "key", Summary: "Replace a collection by an unmodifiable view of it", Group: "keyspace", Arity: 2, handler: freezeCommand},
	{Name: "DUMP", Args: "key", Summary: "Serialize a collection as base64", Group: "keyspace", Arity: 2, handler: dumpCommand},
	{Name: "RESTORE", Args: "key payload [REPLACE]", Summary: "Recreate a collection from DUMP output", Group: "keyspace", Arity: -3, handler: restoreCommand},
}

var serverCommands = []*Command{
	{Name: "STATS", Summary: "Show hash table metrics", Group: "server", Arity: 1, handler: statsCommand},
	{Name: "HELP", Args: "[command]", Summary: "Show command usage", Group: "server", Arity: -1, handler: helpCommand},
	{Name: "QUIT", Summary: "Leave the shell", Group: "server", Arity: 1, handler: quitCommand},
}

func delCommand(r *Registry, args []string) (resp.Node, error) {
	var deleted int64
	for _, k := range args {
		if r.keyspace.Delete(k) {
			deleted++
		}
	}
	return resp.Integer{Value: deleted}, nil
}

func keysCommand(r *Registry, args []string) (resp.Node, error) {
	keys, err := r.keyspace.Keys(args[0])
	if err != nil {
		return nil, err
	}
	return resp.Strings(keys), nil
}

func typeCommand(r *Registry, args []string) (resp.Node, error) {
	return resp.SimpleString{Value: r.keyspace.Type(args[0])}, nil
}

func freezeCommand(r *Registry, args []string) (resp.Node, error) {
	ok, err := r.keyspace.freeze(args[0])
	if err != nil {
		return nil, err
	}
	return boolReply(ok), nil
}

func dumpCommand(r *Registry, args []string) (resp.Node, error) {
	data, err := r.keyspace.dump(args[0])
	if err != nil {
		return nil, err
	}
	if data == nil {
		return resp.Null{}, nil
	}
	return resp.BlobString{Value: base64.StdEncoding.EncodeToString(data)}, nil
}

func restoreCommand(r *Registry, args []string) (resp.Node, error) {
	key := args[0]
	replace := false
	for _, opt := range args[2:] {
		if !strings.EqualFold(opt, "REPLACE") {
			return resp.Error{Message: "ERR syntax error"}, nil
		}
		replace = true
	}
	if !replace && r.keyspace.Type(key) != "none" {
		return resp.Error{Message: "BUSYKEY Target key name already exists."}, nil
	}
	data, err := base64.StdEncoding.DecodeString(args[1])
	if err != nil {
		return nil, cerrors.Wrap(err, cerrors.KindDeserialization, "RESTORE", "payload is not base64")
	}
	if err := r.keyspace.restore(key, data); err != nil {
		return nil, err
	}
	return resp.OK, nil
}

func statsCommand(r *Registry, _ []string) (resp.Node, error) {
	if r.gatherer == nil {
		return nil, errors.New("metrics are disabled")
	}
	families, err := r.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&b, mf); err != nil {
			return nil, err
		}
	}
	return resp.VerbatimString{Format: "txt", Value: b.String()}, nil
}

func helpCommand(r *Registry, args []string) (resp.Node, error) {
	if len(args) > 0 {
		var lines []string
		for _, name := range args {
			c, ok := r.Lookup(name)
			if !ok {
				return nil, errors.New("no help for '" + name + "'")
			}
			lines = append(lines, c.Usage()+" - "+c.Summary)
		}
		return resp.Strings(lines), nil
	}
	var lines []string
	for _, c := range r.Commands() {
		lines = append(lines, "["+c.Group+"] "+c.Usage())
	}
	return resp.Strings(lines), nil
}

func quitCommand(*Registry, []string) (resp.Node, error) {
	return resp.OK, nil
}
