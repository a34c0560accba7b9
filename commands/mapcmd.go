package commands

import (
	"errors"
	"math"

	"github.com/fzft/go-collections/resp"
)

var errOverflow = errors.New("ERR increment or decrement would overflow")

var mapCommands = []*Command{
	{Name: "MPUT", Args: "key field value [field value ...]", Summary: "Set fields of a long-int map", Group: "map", Arity: -4, handler: mputCommand},
	{Name: "MGET", Args: "key field", Summary: "Get the value of a field", Group: "map", Arity: 3, handler: mgetCommand},
	{Name: "MDEL", Args: "key field [field ...]", Summary: "Delete fields", Group: "map", Arity: -3, handler: mdelCommand},
	{Name: "MHAS", Args: "key field", Summary: "Test whether a field exists", Group: "map", Arity: 3, handler: mhasCommand},
	{Name: "MLEN", Args: "key", Summary: "Count the fields of a map", Group: "map", Arity: 2, handler: mlenCommand},
	{Name: "MGETALL", Args: "key", Summary: "List every field and value", Group: "map", Arity: 2, handler: mgetallCommand},
	{Name: "MINCR", Args: "key field delta", Summary: "Add delta to a field, starting from 0", Group: "map", Arity: 4, handler: mincrCommand},
}

func mputCommand(r *Registry, args []string) (resp.Node, error) {
	pairs := args[1:]
	if len(pairs)%2 != 0 {
		return resp.Error{Message: "ERR wrong number of arguments for 'mput' command"}, nil
	}
	// parse everything first so a bad number leaves the map untouched
	keys := make([]int64, 0, len(pairs)/2)
	values := make([]int32, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, err := parseKey(pairs[i])
		if err != nil {
			return nil, err
		}
		v, err := parseValue(pairs[i+1])
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}

	m, err := r.keyspace.mapForWrite(args[0])
	if err != nil {
		return nil, err
	}
	var added int64
	for i, k := range keys {
		_, existed, err := m.Put(k, values[i])
		if err != nil {
			return nil, err
		}
		if !existed {
			added++
		}
	}
	return resp.Integer{Value: added}, nil
}

func mgetCommand(r *Registry, args []string) (resp.Node, error) {
	k, err := parseKey(args[1])
	if err != nil {
		return nil, err
	}
	m, err := r.keyspace.lookupMap(args[0])
	if err != nil || m == nil {
		return resp.Null{}, err
	}
	v, ok := m.Get(k)
	if !ok {
		return resp.Null{}, nil
	}
	return resp.Integer{Value: int64(v)}, nil
}

func mdelCommand(r *Registry, args []string) (resp.Node, error) {
	fields := make([]int64, len(args)-1)
	for i, s := range args[1:] {
		k, err := parseKey(s)
		if err != nil {
			return nil, err
		}
		fields[i] = k
	}
	m, err := r.keyspace.lookupMap(args[0])
	if err != nil || m == nil {
		return resp.Integer{}, err
	}
	var removed int64
	for _, k := range fields {
		_, existed, err := m.Remove(k)
		if err != nil {
			return nil, err
		}
		if existed {
			removed++
		}
	}
	r.keyspace.dropIfEmpty(args[0], m.IsEmpty())
	return resp.Integer{Value: removed}, nil
}

func mhasCommand(r *Registry, args []string) (resp.Node, error) {
	k, err := parseKey(args[1])
	if err != nil {
		return nil, err
	}
	m, err := r.keyspace.lookupMap(args[0])
	if err != nil || m == nil {
		return resp.Integer{}, err
	}
	return boolReply(m.ContainsKey(k)), nil
}

func mlenCommand(r *Registry, args []string) (resp.Node, error) {
	m, err := r.keyspace.lookupMap(args[0])
	if err != nil || m == nil {
		return resp.Integer{}, err
	}
	return resp.Integer{Value: int64(m.Len())}, nil
}

func mgetallCommand(r *Registry, args []string) (resp.Node, error) {
	m, err := r.keyspace.lookupMap(args[0])
	if err != nil || m == nil {
		return resp.Map{}, err
	}
	entries := make([]resp.Entry, 0, m.Len())
	for k, v := range m.All() {
		entries = append(entries, resp.Entry{
			Key:   resp.Integer{Value: k},
			Value: resp.Integer{Value: int64(v)},
		})
	}
	return resp.Map{Entries: entries}, nil
}

func mincrCommand(r *Registry, args []string) (resp.Node, error) {
	k, err := parseKey(args[1])
	if err != nil {
		return nil, err
	}
	delta, err := parseValue(args[2])
	if err != nil {
		return nil, err
	}
	m, err := r.keyspace.mapForWrite(args[0])
	if err != nil {
		return nil, err
	}
	cur, _ := m.Get(k)
	if sum := int64(cur) + int64(delta); sum > math.MaxInt32 || sum < math.MinInt32 {
		return nil, errOverflow
	}
	v, err := m.AddToValue(k, delta)
	if err != nil {
		return nil, err
	}
	return resp.Integer{Value: int64(v)}, nil
}
