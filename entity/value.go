package entity

// ValueType tags the variant held by a Value.
type ValueType int

const (
	// ValueNotGiven marks a value the backend never set.
	ValueNotGiven ValueType = iota
	ValueString
	ValueNumber
	ValueBoolean
	ValueNull
	ValueCompound
)

// NotGivenSentinel is rendered in place of a value the backend never set.
const NotGivenSentinel = "UNKNOWN TYPE"

// String returns the name of the value type.
func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "String"
	case ValueNumber:
		return "Number"
	case ValueBoolean:
		return "Boolean"
	case ValueNull:
		return "Null"
	case ValueCompound:
		return "Compound"
	default:
		return "NotGiven"
	}
}

// Value is the tagged value of an attribute or metadata.
type Value struct {
	Type     ValueType
	Str      string
	Num      float64
	Bool     bool
	Compound *CompoundValue
}

// StringValue returns a String value.
func StringValue(s string) Value { return Value{Type: ValueString, Str: s} }

// NumberValue returns a Number value.
func NumberValue(f float64) Value { return Value{Type: ValueNumber, Num: f} }

// BoolValue returns a Boolean value.
func BoolValue(b bool) Value { return Value{Type: ValueBoolean, Bool: b} }

// NullValue returns a Null value.
func NullValue() Value { return Value{Type: ValueNull} }

// CompoundOf returns a Compound value wrapping c. A nil c yields NotGiven.
func CompoundOf(c *CompoundValue) Value {
	if c == nil {
		return Value{}
	}
	return Value{Type: ValueCompound, Compound: c}
}

// IsCompound reports whether the value is an object or array compound.
func (v Value) IsCompound() bool {
	return v.Type == ValueCompound && v.Compound != nil
}

// CompoundKind identifies a node of a compound value.
type CompoundKind int

const (
	CompoundNull CompoundKind = iota
	CompoundObject
	CompoundArray
	CompoundString
	CompoundNumber
	CompoundBoolean
)

// CompoundValue is a node of a recursive object/array value. Object members
// keep their order; Name is set on object members only.
type CompoundValue struct {
	Kind     CompoundKind
	Name     string
	Str      string
	Num      float64
	Bool     bool
	Children []*CompoundValue
}

// Member pairs an object member name with its value.
type Member struct {
	Name  string
	Value *CompoundValue
}

// Object builds an object compound from members, in order.
func Object(members ...Member) *CompoundValue {
	c := &CompoundValue{Kind: CompoundObject, Children: make([]*CompoundValue, 0, len(members))}
	for _, m := range members {
		child := *m.Value
		child.Name = m.Name
		c.Children = append(c.Children, &child)
	}
	return c
}

// Array builds an array compound from items, in order.
func Array(items ...*CompoundValue) *CompoundValue {
	c := &CompoundValue{Kind: CompoundArray, Children: make([]*CompoundValue, 0, len(items))}
	for _, it := range items {
		child := *it
		child.Name = ""
		c.Children = append(c.Children, &child)
	}
	return c
}

// String builds a string leaf.
func String(s string) *CompoundValue { return &CompoundValue{Kind: CompoundString, Str: s} }

// Number builds a number leaf.
func Number(f float64) *CompoundValue { return &CompoundValue{Kind: CompoundNumber, Num: f} }

// Bool builds a boolean leaf.
func Bool(b bool) *CompoundValue { return &CompoundValue{Kind: CompoundBoolean, Bool: b} }

// Null builds a null leaf.
func Null() *CompoundValue { return &CompoundValue{Kind: CompoundNull} }

// Strings returns the string elements of an array compound, skipping others.
func (c *CompoundValue) Strings() []string {
	if c == nil || c.Kind != CompoundArray {
		return nil
	}
	out := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		if child.Kind == CompoundString {
			out = append(out, child.Str)
		}
	}
	return out
}
