package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

// RawRecord is one untyped archive entry as decoded from JSON
type RawRecord map[string]any

// DecodeArchive decodes an archive document. Anything other than a top-level array
// fails with ErrNotSequence. Array elements that are not objects come back as nil
// records so the parser can report them by index.
func DecodeArchive(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrNotSequence, err)
	}
	return toRecords(doc)
}

func toRecords(doc any) ([]RawRecord, error) {
	switch items := doc.(type) {
	case []RawRecord:
		return items, nil
	case []map[string]any:
		out := make([]RawRecord, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, nil
	case []any:
		out := make([]RawRecord, len(items))
		for i, item := range items {
			out[i] = asObject(item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", entities.ErrNotSequence, doc)
	}
}

func asObject(v any) RawRecord {
	switch t := v.(type) {
	case RawRecord:
		return t
	case map[string]any:
		return t
	default:
		return nil
	}
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

// asString renders scalar values as trimmed text. Objects and lists are not text.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}

// firstString returns the first non-empty text value among keys
func (r RawRecord) firstString(keys ...string) string {
	for _, k := range keys {
		if s := asString(r[k]); s != "" {
			return s
		}
	}
	return ""
}
