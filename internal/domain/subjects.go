package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UnknownMonth buckets sessions without a date.
const UnknownMonth = "unknown"

// SubjectCount is the number of sessions tagged with Subject.
type SubjectCount struct {
	Subject string
	Count   int
}

// MonthSubjects holds the tag counts of one month, most frequent first.
type MonthSubjects struct {
	Month  string
	Counts []SubjectCount
}

// SubjectFrequency is the per-month tag aggregate, months ascending.
// It encodes as a JSON object whose key order is the slice order.
type SubjectFrequency []MonthSubjects

var errNotObject = errors.New("subject frequency: expected JSON object")

// MarshalJSON keeps month and tag order instead of Go's sorted map keys.
func (f SubjectFrequency) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, month := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, month.Month); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, c := range month.Counts {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, c.Subject); err != nil {
				return nil, err
			}
			fmt.Fprintf(&buf, "%d", c.Count)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object back preserving key order.
func (f *SubjectFrequency) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var out SubjectFrequency
	for dec.More() {
		month, err := readKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		entry := MonthSubjects{Month: month}
		for dec.More() {
			subject, err := readKey(dec)
			if err != nil {
				return err
			}
			var count int
			if err := dec.Decode(&count); err != nil {
				return fmt.Errorf("subject frequency %s/%s: %w", month, subject, err)
			}
			entry.Counts = append(entry.Counts, SubjectCount{Subject: subject, Count: count})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
		out = append(out, entry)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	*f = out
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(key); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	buf.WriteByte(':')
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", errNotObject
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errNotObject
	}
	return nil
}
