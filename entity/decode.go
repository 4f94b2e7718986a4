package entity

import (
	"fmt"
	"io"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
)

// DecodeBatch reads a backend query result:
//
//	{"errorCode": {"code": 200, "reasonPhrase": "OK", "details": ""},
//	 "entities": [{"id": "...", "type": "...", "errorCode": {...},
//	               "attributes": [{"name": "...", "type": "...", "value": ...,
//	                               "metadata": [{"name": "...", "type": "...", "value": ...}]}]}]}
//
// Compound values keep their member order. An absent "value" decodes as NotGiven.
func DecodeBatch(r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapTransient(err, "entity", "DecodeBatch", "read input")
	}

	root, err := tree.Parse(data)
	if err != nil {
		return nil, errors.WrapInvalid(err, "entity", "DecodeBatch", "parse batch JSON")
	}
	if root.Kind() != tree.KindObject {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "entity", "DecodeBatch", "batch must be a JSON object")
	}

	batch := &Batch{}
	if n := root.Member("errorCode"); n != nil {
		if batch.Error, err = decodeErrorCode(n); err != nil {
			return nil, err
		}
	}

	if n := root.Member("entities"); n != nil {
		if n.Kind() != tree.KindArray {
			return nil, errors.WrapInvalid(errors.ErrInvalidData, "entity", "DecodeBatch", "entities must be an array")
		}
		batch.Entities = make([]Entity, 0, n.Len())
		for i, en := range n.Children() {
			e, err := decodeEntity(en)
			if err != nil {
				return nil, errors.WrapInvalid(err, "entity", "DecodeBatch", fmt.Sprintf("entity %d", i))
			}
			batch.Entities = append(batch.Entities, e)
		}
	}

	return batch, nil
}

func decodeEntity(n *tree.Node) (Entity, error) {
	var e Entity
	if n.Kind() != tree.KindObject {
		return e, fmt.Errorf("%w: entity must be an object", errors.ErrInvalidData)
	}

	var err error
	if e.ID, err = stringMember(n, "id", true); err != nil {
		return e, err
	}
	if e.Type, err = stringMember(n, "type", false); err != nil {
		return e, err
	}
	if ec := n.Member("errorCode"); ec != nil {
		if e.Error, err = decodeErrorCode(ec); err != nil {
			return e, err
		}
	}

	if attrs := n.Member("attributes"); attrs != nil {
		if attrs.Kind() != tree.KindArray {
			return e, fmt.Errorf("%w: attributes must be an array", errors.ErrInvalidData)
		}
		for _, an := range attrs.Children() {
			a, err := decodeAttribute(an)
			if err != nil {
				return e, err
			}
			e.Attributes = append(e.Attributes, a)
		}
	}

	return e, e.Validate()
}

func decodeAttribute(n *tree.Node) (Attribute, error) {
	var a Attribute
	if n.Kind() != tree.KindObject {
		return a, fmt.Errorf("%w: attribute must be an object", errors.ErrInvalidData)
	}

	var err error
	if a.Name, err = stringMember(n, "name", true); err != nil {
		return a, err
	}
	if a.Type, err = stringMember(n, "type", false); err != nil {
		return a, err
	}
	a.Value = decodeValue(n.Member("value"))

	if md := n.Member("metadata"); md != nil {
		if md.Kind() != tree.KindArray {
			return a, fmt.Errorf("%w: metadata of %s must be an array", errors.ErrInvalidData, a.Name)
		}
		for _, mn := range md.Children() {
			if mn.Kind() != tree.KindObject {
				return a, fmt.Errorf("%w: metadata of %s must be objects", errors.ErrInvalidData, a.Name)
			}
			var m Metadata
			if m.Name, err = stringMember(mn, "name", true); err != nil {
				return a, err
			}
			if m.Type, err = stringMember(mn, "type", false); err != nil {
				return a, err
			}
			m.Value = decodeValue(mn.Member("value"))
			a.Metadata = append(a.Metadata, m)
		}
	}

	return a, nil
}

func decodeErrorCode(n *tree.Node) (ErrorCode, error) {
	var ec ErrorCode
	if n.Kind() != tree.KindObject {
		return ec, errors.WrapInvalid(errors.ErrInvalidData, "entity", "decodeErrorCode", "errorCode must be an object")
	}
	if c := n.Member("code"); c != nil {
		if c.Kind() != tree.KindNumber {
			return ec, errors.WrapInvalid(errors.ErrTypeMismatch, "entity", "decodeErrorCode", "code must be a number")
		}
		ec.Code = int(c.Num())
	}
	var err error
	if ec.ReasonPhrase, err = stringMember(n, "reasonPhrase", false); err != nil {
		return ec, err
	}
	if ec.Details, err = stringMember(n, "details", false); err != nil {
		return ec, err
	}
	return ec, nil
}

// decodeValue maps a JSON value node onto the tagged Value. A nil node is NotGiven.
func decodeValue(n *tree.Node) Value {
	if n == nil {
		return Value{}
	}
	switch n.Kind() {
	case tree.KindString:
		return StringValue(n.Str())
	case tree.KindNumber:
		return NumberValue(n.Num())
	case tree.KindBoolean:
		return BoolValue(n.Bool())
	case tree.KindNull:
		return NullValue()
	default:
		return CompoundOf(compoundFromNode(n))
	}
}

// CompoundFromTree converts a parsed JSON node into a CompoundValue.
func CompoundFromTree(n *tree.Node) *CompoundValue {
	if n == nil {
		return nil
	}
	return compoundFromNode(n)
}

func compoundFromNode(n *tree.Node) *CompoundValue {
	c := &CompoundValue{Name: n.Name()}
	switch n.Kind() {
	case tree.KindObject, tree.KindArray:
		c.Kind = CompoundArray
		if n.Kind() == tree.KindObject {
			c.Kind = CompoundObject
		}
		c.Children = make([]*CompoundValue, 0, n.Len())
		for _, child := range n.Children() {
			cc := compoundFromNode(child)
			if c.Kind == CompoundArray {
				cc.Name = ""
			}
			c.Children = append(c.Children, cc)
		}
	case tree.KindString:
		c.Kind, c.Str = CompoundString, n.Str()
	case tree.KindNumber:
		c.Kind, c.Num = CompoundNumber, n.Num()
	case tree.KindBoolean:
		c.Kind, c.Bool = CompoundBoolean, n.Bool()
	default:
		c.Kind = CompoundNull
	}
	return c
}

func stringMember(n *tree.Node, name string, required bool) (string, error) {
	m := n.Member(name)
	if m == nil {
		if required {
			return "", fmt.Errorf("%w: %q", errors.ErrMissingRequiredField, name)
		}
		return "", nil
	}
	if m.Kind() != tree.KindString {
		return "", fmt.Errorf("%w: %q must be a string", errors.ErrTypeMismatch, name)
	}
	return m.Str(), nil
}
