package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// MarshalJSON renders the subtree. Object members are written in order,
// including repeated names.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) write(buf *bytes.Buffer) error {
	switch n.kind {
	case KindObject:
		buf.WriteByte('{')
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, c.name)
			buf.WriteByte(':')
			if err := c.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := c.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindString:
		writeString(buf, n.str)
	case KindNumber:
		b, err := json.Marshal(n.num)
		if err != nil {
			return errors.WrapInvalid(err, "Node", "MarshalJSON", fmt.Sprintf("number %q", n.name))
		}
		buf.Write(b)
	case KindBoolean:
		if n.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
}

// Parse decodes a JSON document into a tree, keeping member order and
// repeated member names.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseValue(dec, "")
	if err != nil {
		return nil, errors.WrapInvalid(err, "tree", "Parse", "decode JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.WrapInvalid(errors.ErrParsingFailed, "tree", "Parse", "trailing data after JSON value")
	}
	return root, nil
}

func parseValue(dec *json.Decoder, name string) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, name, tok)
}

func parseToken(dec *json.Decoder, name string, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := &Node{name: name, kind: KindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", errors.ErrParsingFailed, keyTok)
				}
				child, err := parseValue(dec, key)
				if err != nil {
					return nil, err
				}
				child.attached = true
				obj.children = append(obj.children, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Node{name: name, kind: KindArray}
			for dec.More() {
				child, err := parseValue(dec, "")
				if err != nil {
					return nil, err
				}
				child.attached = true
				arr.children = append(arr.children, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("%w: unexpected delimiter %v", errors.ErrParsingFailed, v)
	case string:
		return &Node{name: name, kind: KindString, str: v}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", errors.ErrParsingFailed, v)
		}
		return &Node{name: name, kind: KindNumber, num: f}, nil
	case bool:
		return &Node{name: name, kind: KindBoolean, boolean: v}, nil
	case nil:
		return &Node{name: name, kind: KindNull}, nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", errors.ErrParsingFailed, tok)
}
