package contact

import (
	"strings"

	"github.com/crazythinker/studio/pkg/ct/validation"
	"github.com/google/uuid"
)

// Field names one input of the contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

var fields = []Field{FieldName, FieldEmail, FieldMessage}

// Fields returns the form fields in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ParseField matches s case-insensitively against the field names.
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)
	for _, f := range fields {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}
	return "", false
}

// FormState is the content of one contact form.
type FormState struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the value of field f.
func (s FormState) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return ""
}

func (s *FormState) set(f Field, value string) bool {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldMessage:
		s.Message = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether every field is blank.
func (s FormState) IsEmpty() bool {
	return s == FormState{}
}

// Validate checks that every field is present, the email has a usable
// shape and nothing exceeds maxLen characters.
func (s FormState) Validate(maxLen int) validation.ValidationErrors {
	var errs validation.ValidationErrors
	for _, f := range fields {
		v := s.Get(f)
		errs.Check(validation.RequiredString(string(f), v))
		if maxLen > 0 {
			errs.Check(validation.StringMaxLength(string(f), v, maxLen))
		}
	}
	errs.Check(validation.Email(string(FieldEmail), s.Email))
	return errs
}

// Status is the lifecycle state of a form's submission.
type Status string

const (
	Idle      Status = "idle"
	Sending   Status = "sending"
	Succeeded Status = "succeeded"
	Failed    Status = "failed"
)

// IsTerminal is true for the outcome states of an attempt.
func (s Status) IsTerminal() bool {
	return s == Succeeded || s == Failed
}

func (s Status) String() string {
	return string(s)
}

const (
	NoticeSucceeded = "Message sent successfully! We will be in touch shortly."
	NoticeFailed    = "Sorry, your message could not be sent. Please try again in a moment."
)

// Snapshot is a consistent copy of a controller's state for rendering.
type Snapshot struct {
	ID        uuid.UUID         `json:"id"`
	Status    Status            `json:"status"`
	Form      FormState         `json:"form"`
	Notice    string            `json:"notice,omitempty"`
	CanSubmit bool              `json:"can_submit"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Sending is a template convenience.
func (s Snapshot) Sending() bool {
	return s.Status == Sending
}

// NoticeIsError tells the template which style to use for Notice.
func (s Snapshot) NoticeIsError() bool {
	return s.Status == Failed
}

func noticeFor(s Status) string {
	switch s {
	case Succeeded:
		return NoticeSucceeded
	case Failed:
		return NoticeFailed
	}
	return ""
}
