// Package canon produces a canonical JSON encoding of arbitrary values:
// object keys sorted, no HTML-escaping, used wherever two structurally
// equal values must hash identically regardless of map iteration order.
package canon

import (
	"bytes"
	"encoding/json"
	"sort"

	"go.trai.ch/zerr"
)

// Marshal returns the canonical JSON encoding of v: round-tripped through
// a generic representation so object keys come out sorted, with HTML
// escaping disabled so the bytes are stable across encodings of the same
// value.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, zerr.Wrap(err, "canon: marshal")
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, zerr.Wrap(err, "canon: unmarshal")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := encodeSorted(&buf, generic); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return out, nil
}

// encodeSorted writes v to buf, sorting map keys at every level so the
// output is independent of Go's randomized map iteration order.
func encodeSorted(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := encodeScalar(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encodeSorted(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeSorted(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		b, err := encodeScalar(val)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

func encodeScalar(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, zerr.Wrap(err, "canon: encode scalar")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
