package submission

import (
	"bytes"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Entry is one field of a submission record.
type Entry struct {
	Name  string
	Value string
}

// Record is the read-only snapshot handed to the submission effect. File
// values are replaced by the first file's name.
type Record struct {
	FormID      string
	SubmittedAt time.Time
	entries     []Entry
}

// BuildRecord snapshots values in the order given by fields. Fields missing
// from values are recorded as empty strings.
func BuildRecord(formID string, fields []string, values map[string]model.Value, at time.Time) Record {
	entries := make([]Entry, 0, len(fields))
	for _, name := range fields {
		entries = append(entries, Entry{Name: name, Value: values[name].Display()})
	}
	return Record{FormID: formID, SubmittedAt: at, entries: entries}
}

// Entries returns a copy of the ordered entries.
func (r Record) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Get returns the value recorded for name.
func (r Record) Get(name string) (string, bool) {
	for _, entry := range r.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return "", false
}

// Map returns the record as a plain map.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.entries))
	for _, entry := range r.entries {
		out[entry.Name] = entry.Value
	}
	return out
}

// MarshalJSON encodes the record as an object whose keys follow field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, entry := range r.entries {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LogValue renders the record as a group so handlers can redact individual
// fields by name.
func (r Record) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r.entries))
	for _, entry := range r.entries {
		attrs = append(attrs, slog.String(entry.Name, entry.Value))
	}
	return slog.GroupValue(attrs...)
}
