// Package flash carries one-shot notifications across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	CookieName = "flash"
	maxAge     = 60 * time.Second

	// MaxValueSize bounds the encoded cookie value so the whole Set-Cookie
	// header stays under the 4096 bytes browsers accept.
	MaxValueSize = 3800
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Input is the form submission that produced an error, kept so the page can
// reopen the form with what the user typed.
type Input struct {
	Form   string            `json:"form"`
	EditID int64             `json:"edit_id,omitempty"`
	Fields map[string]string `json:"fields"`
}

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Old  *Input `json:"old,omitempty"`
}

func Success(text string) Message {
	return Message{Kind: KindSuccess, Text: text}
}

func Error(text string) Message {
	return Message{Kind: KindError, Text: text}
}

func (m Message) Empty() bool {
	return m.Text == ""
}

func (m Message) IsError() bool {
	return m.Kind == KindError
}

// WithInput attaches the rejected submission of the named form.
func (m Message) WithInput(form string, editID int64, fields map[string]string) Message {
	m.Old = &Input{Form: form, EditID: editID, Fields: fields}
	return m
}

// InputFor returns the kept input when it belongs to form.
func (m Message) InputFor(form string) (*Input, bool) {
	if !m.IsError() || m.Old == nil || m.Old.Form != form {
		return nil, false
	}
	return m.Old, true
}

// Set stores m for the next request. Empty messages are not stored.
func Set(w http.ResponseWriter, m Message, secure bool) {
	if m.Empty() {
		return
	}
	value, err := encode(m)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads the pending message and clears it, so it is seen exactly once.
// A malformed cookie is dropped and yields an empty message.
func Pop(w http.ResponseWriter, r *http.Request) Message {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Message{}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Message{}
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}
	}
	if m.Kind != KindSuccess && m.Kind != KindError {
		return Message{}
	}
	return m
}

// encode shortens the kept input, longest field first, until the value fits
// MaxValueSize. The notification text itself is never dropped.
func encode(m Message) (string, error) {
	if m.Old != nil {
		fields := make(map[string]string, len(m.Old.Fields))
		for k, v := range m.Old.Fields {
			fields[k] = v
		}
		old := *m.Old
		old.Fields = fields
		m.Old = &old
	}
	for {
		raw, err := json.Marshal(m)
		if err != nil {
			return "", err
		}
		value := base64.RawURLEncoding.EncodeToString(raw)
		if len(value) <= MaxValueSize {
			return value, nil
		}
		if m.Old == nil {
			m.Text = truncate(m.Text, len(m.Text)/2)
			continue
		}
		key := longest(m.Old.Fields)
		if key == "" {
			m.Old = nil
			continue
		}
		m.Old.Fields[key] = truncate(m.Old.Fields[key], len(m.Old.Fields[key])/2)
	}
}

func longest(fields map[string]string) string {
	var key string
	for k, v := range fields {
		if v != "" && (key == "" || len(v) > len(fields[key])) {
			key = k
		}
	}
	return key
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
