package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrSyntax marks input that is not a single well-formed JSON value.
	ErrSyntax = errors.New("record: invalid JSON")
	// ErrNotArray marks well-formed JSON whose top-level value is not an array.
	ErrNotArray = errors.New("record: top-level value is not an array")
	// ErrEncoding marks input that is not valid UTF-8.
	ErrEncoding = errors.New("record: input is not valid UTF-8")
)

const indent = "  "

// Decode parses a UTF-8 JSON array, keeping object key order.
func Decode(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input at offset %d", ErrSyntax, dec.InputOffset())
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: extra data after offset %d", ErrSyntax, dec.InputOffset())
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotArray, TypeName(v))
	}
	return Document(arr), nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", rune(delim), dec.InputOffset())
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last value wins, first position is kept.
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Encode renders the document with two-space indentation. Non-ASCII text and
// HTML-significant characters are written literally; no trailing newline.
func Encode(doc Document) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeValue(&compact, []any(doc)); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("record: indent: %w", err)
	}
	return out.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, t)
	case json.Number:
		if t == "" {
			return fmt.Errorf("record: empty number")
		}
		buf.WriteString(t.String())
	case *Object:
		buf.WriteByte('{')
		for i, key := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, key)
			buf.WriteByte(':')
			if err := writeValue(buf, t.values[key]); err != nil {
				return fmt.Errorf("%q: %w", key, err)
			}
		}
		buf.WriteByte('}')
	case Document:
		return writeValue(buf, []any(t))
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	default:
		return writeScalar(buf, t)
	}
	return nil
}

const hex = "0123456789abcdef"

// writeString quotes s escaping only '"', '\\' and control characters. Every
// other code point, U+2028 and U+2029 included, is written as is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[c>>4])
				buf.WriteByte(hex[c&0xF])
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}

// writeScalar covers any other Go value built outside Decode.
func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("record: encode %T: %w", v, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
