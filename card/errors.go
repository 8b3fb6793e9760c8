package card

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure class the engine can report.
// All are data- or schema-integrity failures: local, synchronous,
// never retried.
var (
	// ErrMalformedNumericField reports text in a numeric field that does
	// not parse under the active decode kind and scale factor.
	ErrMalformedNumericField = errors.New("malformed numeric field")

	// ErrFieldCountMismatch reports a card whose decoded value count
	// differs from the schema-declared count.
	ErrFieldCountMismatch = errors.New("field count mismatch")

	// ErrExpectedValueMismatch reports a self-check literal (a fixed
	// title or tag) that did not read back as expected.
	ErrExpectedValueMismatch = errors.New("expected value mismatch")

	// ErrUnresolvedCount reports use of a descriptor whose value count
	// is still deferred to another card's result.
	ErrUnresolvedCount = errors.New("unresolved deferred count")

	// ErrUnknownReference reports a deferred-count reference whose card
	// label or field key is absent from the result store.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrInconsistentTableShape reports table-tagged fields that are not
	// contiguous or disagree on their row count.
	ErrInconsistentTableShape = errors.New("inconsistent table shape")

	// ErrUnexpectedCardLabel reports a card label that violates the
	// stream grammar at its position.
	ErrUnexpectedCardLabel = errors.New("unexpected card label")

	// ErrUnsupportedCardType reports a label whose card type is declared
	// but has no finalized schema.
	ErrUnsupportedCardType = errors.New("unsupported card type")

	// ErrLineTooWide reports a physical line exceeding the line limit.
	ErrLineTooWide = errors.New("line too wide")

	// ErrEmptyInput reports a zero-line input.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingWidth reports a descriptor whose field width cannot be
	// determined from its literal form.
	ErrMissingWidth = errors.New("missing field width")

	// ErrSchemaInvalid reports a malformed schema (a programming error
	// in a schema catalogue, not a data error).
	ErrSchemaInvalid = errors.New("invalid schema")

	// ErrDuplicateLabel reports a second Put for a label already present
	// in a result store.
	ErrDuplicateLabel = errors.New("duplicate card label")
)

// CardError wraps a sentinel error with enough context to locate the
// offending input: the card label, the field key and the line offset
// within the card (-1 when not applicable).
type CardError struct {
	Label string
	Key   string
	Line  int
	Msg   string
	Err   error
}

func (e *CardError) Error() string {
	s := "card " + e.Label
	if e.Key != "" {
		s += " field " + e.Key
	}
	if e.Line >= 0 {
		s += fmt.Sprintf(" line %d", e.Line)
	}
	s += ": " + e.Err.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *CardError) Unwrap() error { return e.Err }

// cardErr builds a CardError with a formatted detail message.
func cardErr(label, key string, line int, err error, format string, args ...any) error {
	return &CardError{
		Label: label,
		Key:   key,
		Line:  line,
		Msg:   fmt.Sprintf(format, args...),
		Err:   err,
	}
}
