// Package resp models shell replies as RESP3 nodes.
// https://github.com/redis/redis-specifications/blob/master/protocol/RESP3.md
package resp

const CRLF string = "\r\n"

// Types equivalent to RESP version 2
const (
	TypeArray   byte = '*'
	TypeBlob    byte = '$'
	TypeSimple  byte = '+'
	TypeError   byte = '-'
	TypeInteger byte = ':'
)

// Types introduced by RESP3
const (
	TypeNull     byte = '_'
	TypeDouble   byte = ','
	TypeBoolean  byte = '#'
	TypeVerbatim byte = '='
	TypeMap      byte = '%'
	TypeSet      byte = '~'
)

// Node is one reply value. The concrete types below are the only
// implementations.
type Node interface {
	node()
}

type BlobString struct {
	Value string
}

type SimpleString struct {
	Value string
}

type Error struct {
	Message string
}

type Integer struct {
	Value int64
}

type Null struct {
}

type Double struct {
	Value float64
}

type Boolean struct {
	Value bool
}

// VerbatimString carries preformatted text; Format is a three letter hint
// such as "txt".
type VerbatimString struct {
	Format string
	Value  string
}

type Array struct {
	Elements []Node
}

type Set struct {
	Elements []Node
}

// Entry is one key/value pair of a Map. Maps keep their entries in order so
// replies are reproducible.
type Entry struct {
	Key   Node
	Value Node
}

type Map struct {
	Entries []Entry
}

func (BlobString) node()     {}
func (SimpleString) node()   {}
func (Error) node()          {}
func (Integer) node()        {}
func (Null) node()           {}
func (Double) node()         {}
func (Boolean) node()        {}
func (VerbatimString) node() {}
func (Array) node()          {}
func (Set) node()            {}
func (Map) node()            {}

// OK is the reply of commands that succeed without a value.
var OK = SimpleString{Value: "OK"}

// Strings builds an array of blob strings.
func Strings(values []string) Array {
	elems := make([]Node, len(values))
	for i, v := range values {
		elems[i] = BlobString{Value: v}
	}
	return Array{Elements: elems}
}
