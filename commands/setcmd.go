package commands

import (
	"github.com/fzft/go-collections/resp"
	"github.com/fzft/go-collections/set"
)

var setCommands = []*Command{
	{Name: "SADD", Args: "key member [member ...]", Summary: "Add members to a set", Group: "set", Arity: -3, handler: saddCommand},
	{Name: "SREM", Args: "key member [member ...]", Summary: "Remove members from a set", Group: "set", Arity: -3, handler: sremCommand},
	{Name: "SMEMBERS", Args: "key", Summary: "List the members of a set in insertion order", Group: "set", Arity: 2, handler: smembersCommand},
	{Name: "SISMEMBER", Args: "key member", Summary: "Test set membership", Group: "set", Arity: 3, handler: sismemberCommand},
	{Name: "SCARD", Args: "key", Summary: "Count the members of a set", Group: "set", Arity: 2, handler: scardCommand},
	{Name: "SUNION", Args: "key [key ...]", Summary: "Union of sets", Group: "set", Arity: -2, handler: algebraCommand(set.UnionAll[string])},
	{Name: "SINTER", Args: "key [key ...]", Summary: "Intersection of sets", Group: "set", Arity: -2, handler: algebraCommand(set.IntersectAll[string])},
	{Name: "SDIFF", Args: "key [key ...]", Summary: "Members of the first set missing from the others", Group: "set", Arity: -2, handler: algebraCommand(set.DifferenceAll[string])},
	{Name: "SXOR", Args: "key key", Summary: "Symmetric difference of two sets", Group: "set", Arity: 3, handler: sxorCommand},
	{Name: "SSUBSET", Args: "key key", Summary: "Test whether the first set is a subset of the second", Group: "set", Arity: 3, handler: subsetCommand(set.IsSubsetOf[string])},
	{Name: "SPROPER", Args: "key key", Summary: "Test whether the first set is a proper subset of the second", Group: "set", Arity: 3, handler: subsetCommand(set.IsProperSubsetOf[string])},
	{Name: "SPOWER", Args: "key", Summary: "Every subset of a set", Group: "set", Arity: 2, handler: spowerCommand},
	{Name: "SPRODUCT", Args: "key key", Summary: "Cartesian product of two sets", Group: "set", Arity: 3, handler: sproductCommand},
}

// maxPowerBase bounds SPOWER replies at 65536 subsets.
const maxPowerBase = 16

func setReply(s set.Set[string]) resp.Set {
	elems := make([]resp.Node, 0, s.Len())
	for m := range s.All() {
		elems = append(elems, resp.BlobString{Value: m})
	}
	return resp.Set{Elements: elems}
}

func saddCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.setForWrite(args[0])
	if err != nil {
		return nil, err
	}
	var added int64
	for _, m := range args[1:] {
		ok, err := s.Add(m)
		if err != nil {
			return nil, err
		}
		if ok {
			added++
		}
	}
	return resp.Integer{Value: added}, nil
}

func sremCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.lookupSet(args[0])
	if err != nil || s == nil {
		return resp.Integer{}, err
	}
	var removed int64
	for _, m := range args[1:] {
		ok, err := s.Remove(m)
		if err != nil {
			return nil, err
		}
		if ok {
			removed++
		}
	}
	r.keyspace.dropIfEmpty(args[0], s.IsEmpty())
	return resp.Integer{Value: removed}, nil
}

func smembersCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.readSet(args[0])
	if err != nil {
		return nil, err
	}
	return setReply(s), nil
}

func sismemberCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.readSet(args[0])
	if err != nil {
		return nil, err
	}
	return boolReply(s.Contains(args[1])), nil
}

func scardCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.readSet(args[0])
	if err != nil {
		return nil, err
	}
	return resp.Integer{Value: int64(s.Len())}, nil
}

func readSets(r *Registry, keys []string) ([]set.Set[string], error) {
	sets := make([]set.Set[string], len(keys))
	for i, k := range keys {
		s, err := r.keyspace.readSet(k)
		if err != nil {
			return nil, err
		}
		sets[i] = s
	}
	return sets, nil
}

func algebraCommand(op func(...set.Set[string]) set.Set[string]) Handler {
	return func(r *Registry, args []string) (resp.Node, error) {
		sets, err := readSets(r, args)
		if err != nil {
			return nil, err
		}
		return setReply(op(sets...)), nil
	}
}

func sxorCommand(r *Registry, args []string) (resp.Node, error) {
	sets, err := readSets(r, args)
	if err != nil {
		return nil, err
	}
	return setReply(set.SymmetricDifference(sets[0], sets[1])), nil
}

func subsetCommand(test func(a, b set.Set[string]) bool) Handler {
	return func(r *Registry, args []string) (resp.Node, error) {
		sets, err := readSets(r, args)
		if err != nil {
			return nil, err
		}
		return boolReply(test(sets[0], sets[1])), nil
	}
}

func spowerCommand(r *Registry, args []string) (resp.Node, error) {
	s, err := r.keyspace.readSet(args[0])
	if err != nil {
		return nil, err
	}
	ps, err := set.BoundedPowerSet(s, maxPowerBase)
	if err != nil {
		return nil, err
	}
	elems := make([]resp.Node, 0, ps.Len())
	for subset := range ps.All() {
		elems = append(elems, setReply(subset))
	}
	return resp.Array{Elements: elems}, nil
}

func sproductCommand(r *Registry, args []string) (resp.Node, error) {
	sets, err := readSets(r, args)
	if err != nil {
		return nil, err
	}
	p := set.CartesianProduct(sets[0], sets[1])
	elems := make([]resp.Node, 0, p.Len())
	for pair := range p.All() {
		elems = append(elems, resp.Strings([]string{pair.First, pair.Second}))
	}
	return resp.Array{Elements: elems}, nil
}
