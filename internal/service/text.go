package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a request string that also accepts a bare JSON number or
// boolean, keeping its literal text.  null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a string or number, got %s", b[:1])
	}
	if !json.Valid(b) {
		return fmt.Errorf("invalid scalar %q", b)
	}
	*t = Text(b)
	return nil
}

func (t Text) trim() string { return strings.TrimSpace(string(t)) }

// optional returns nil for blank text.
func (t Text) optional() *string {
	s := t.trim()
	if s == "" {
		return nil
	}
	return &s
}
