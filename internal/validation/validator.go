package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	apperrors "go-chi-remote-calc/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// FieldError is one field-level failure.
type FieldError struct {
	Field   string
	Kind    apperrors.Kind
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Messages maps a JSON field name to the message reported for each failing
// validate tag. The empty tag key is the field's fallback message.
type Messages map[string]map[string]string

func (m Messages) lookup(fe validator.FieldError) string {
	if byTag, ok := m[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
		if msg, ok := byTag[""]; ok {
			return msg
		}
	}
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

// Collector accumulates field errors for one record. Fields are reported in
// the order given to NewCollector; unknown fields sort last.
type Collector struct {
	order  map[string]int
	errs   error
	failed map[string]struct{}
}

func NewCollector(fields ...string) *Collector {
	order := make(map[string]int, len(fields))
	for i, f := range fields {
		order[f] = i
	}
	return &Collector{order: order, failed: map[string]struct{}{}}
}

// Add records a failure for field.
func (c *Collector) Add(field string, kind apperrors.Kind, message string) {
	c.failed[field] = struct{}{}
	c.errs = multierr.Append(c.errs, FieldError{Field: field, Kind: kind, Message: message})
}

// AddErr records err for field, using its kind and message when it is an
// *errors.Error and INVALID_TYPE otherwise.
func (c *Collector) AddErr(field string, err error) {
	if err == nil {
		return
	}
	if typed := apperrors.As(err); typed != nil {
		c.Add(field, typed.Kind(), typed.Message())
		return
	}
	c.Add(field, apperrors.KindInvalidType, InvalidNumberMessage)
}

// Failed reports whether field already has an error.
func (c *Collector) Failed(field string) bool {
	_, ok := c.failed[field]
	return ok
}

// Check runs v's validate tags and records a message for every failing field
// that has not already failed coercion.
func (c *Collector) Check(v any, messages Messages) {
	err := validate.Struct(v)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.Add("", apperrors.KindValidation, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		if c.Failed(fe.Field()) {
			continue
		}
		c.Add(fe.Field(), apperrors.KindValidation, messages.lookup(fe))
	}
}

// Err returns nil when no field failed, otherwise an Errors value.
func (c *Collector) Err() error {
	if c.errs == nil {
		return nil
	}

	list := make([]FieldError, 0, len(c.failed))
	for _, err := range multierr.Errors(c.errs) {
		var fe FieldError
		if errors.As(err, &fe) {
			list = append(list, fe)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return c.rank(list[i].Field) < c.rank(list[j].Field)
	})

	var combined error
	for _, fe := range list {
		combined = multierr.Append(combined, fe)
	}
	return Errors{err: combined}
}

func (c *Collector) rank(field string) int {
	if i, ok := c.order[field]; ok {
		return i
	}
	return len(c.order)
}

// Errors is the full set of field errors for a record.
type Errors struct {
	err error
}

// Error joins every field message with "; ".
func (e Errors) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// List returns the field errors in field order.
func (e Errors) List() []FieldError {
	out := []FieldError{}
	for _, err := range multierr.Errors(e.err) {
		var fe FieldError
		if errors.As(err, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

// Fields maps each failing field to its message.
func (e Errors) Fields() map[string]string {
	out := map[string]string{}
	for _, fe := range e.List() {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Kind is INVALID_TYPE if any field failed coercion, VALIDATION_ERROR otherwise.
func (e Errors) Kind() apperrors.Kind {
	for _, fe := range e.List() {
		if fe.Kind == apperrors.KindInvalidType {
			return apperrors.KindInvalidType
		}
	}
	return apperrors.KindValidation
}

// AppError converts e into the caller-facing error carrying the joined
// message and the per-field details.
func (e Errors) AppError() *apperrors.Error {
	return apperrors.Wrap(e.Kind(), e, e.Error()).WithDetails(e.Fields())
}
