package props

import "strings"

// TagKind identifies a canonical runtime type.
type TagKind uint8

const (
	TagString TagKind = iota + 1
	TagNumber
	TagBoolean
	TagObject
	TagArray
	TagFunction
	TagSymbol
	TagBigInt
	TagCustom // user-defined constructor or class, see TypeTag.Name
)

// TypeTag is a canonical runtime type classification.
type TypeTag struct {
	Kind TagKind
	// Name is the constructor name of a TagCustom tag.
	Name string
}

// Built-in tags.
var (
	String   = TypeTag{Kind: TagString}
	Number   = TypeTag{Kind: TagNumber}
	Boolean  = TypeTag{Kind: TagBoolean}
	Object   = TypeTag{Kind: TagObject}
	Array    = TypeTag{Kind: TagArray}
	Function = TypeTag{Kind: TagFunction}
	Symbol   = TypeTag{Kind: TagSymbol}
	BigInt   = TypeTag{Kind: TagBigInt}
)

// Custom returns the tag of a user-defined constructor.
func Custom(name string) TypeTag {
	return TypeTag{Kind: TagCustom, Name: name}
}

// String returns the lowercase form used in messages ("string", "bigint").
// Custom tags render as their constructor name.
func (t TypeTag) String() string {
	switch t.Kind {
	case TagString:
		return "string"
	case TagNumber:
		return "number"
	case TagBoolean:
		return "boolean"
	case TagObject:
		return "object"
	case TagArray:
		return "array"
	case TagFunction:
		return "function"
	case TagSymbol:
		return "symbol"
	case TagBigInt:
		return "bigint"
	case TagCustom:
		return t.Name
	default:
		return "unknown"
	}
}

// IsNative reports whether t is one of the built-in constructor tags.
func (t TypeTag) IsNative() bool {
	return t.Kind >= TagString && t.Kind < TagCustom
}

// IsReference reports whether t is object, array or function. Defaults for
// these types must be supplied through a factory function.
func (t TypeTag) IsReference() bool {
	return t.Kind == TagObject || t.Kind == TagArray || t.Kind == TagFunction
}

// nativeConstructors maps the global constructor names to their tags.
var nativeConstructors = map[string]TypeTag{
	"String":   String,
	"Number":   Number,
	"Boolean":  Boolean,
	"Object":   Object,
	"Array":    Array,
	"Function": Function,
	"Symbol":   Symbol,
	"BigInt":   BigInt,
}

// TagForConstructor maps a constructor name to its tag. Names other than the
// built-in constructors become custom tags.
func TagForConstructor(name string) TypeTag {
	if t, ok := nativeConstructors[name]; ok {
		return t
	}
	return Custom(name)
}

// TypeSet is an insertion-ordered set of tags. The zero value is the empty
// set. A TypeSet is never modified after it is built; With returns a copy.
type TypeSet struct {
	tags []TypeTag
}

// NewTypeSet builds a set from tags, dropping duplicates.
func NewTypeSet(tags ...TypeTag) TypeSet {
	var s TypeSet
	for _, t := range tags {
		if !s.Has(t) {
			s.tags = append(s.tags, t)
		}
	}
	return s
}

// Len returns the number of tags in the set.
func (s TypeSet) Len() int { return len(s.tags) }

// Empty reports whether the set has no tags.
func (s TypeSet) Empty() bool { return len(s.tags) == 0 }

// Tags returns a copy of the tags in insertion order.
func (s TypeSet) Tags() []TypeTag {
	return append([]TypeTag(nil), s.tags...)
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t TypeTag) bool {
	for _, x := range s.tags {
		if x == t {
			return true
		}
	}
	return false
}

// Union returns the set of tags in s or o, s's tags first.
func (s TypeSet) Union(o TypeSet) TypeSet {
	return NewTypeSet(append(s.Tags(), o.tags...)...)
}

// Intersects reports whether s and o share a tag.
func (s TypeSet) Intersects(o TypeSet) bool {
	for _, t := range o.tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Native returns the subset of built-in constructor tags.
func (s TypeSet) Native() TypeSet {
	var out TypeSet
	for _, t := range s.tags {
		if t.IsNative() {
			out.tags = append(out.tags, t)
		}
	}
	return out
}

// String renders the set as an English alternative list: "number",
// "number or string", "number, string or boolean".
func (s TypeSet) String() string {
	names := make([]string, len(s.tags))
	for i, t := range s.tags {
		names[i] = t.String()
	}
	return joinOr(names)
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
