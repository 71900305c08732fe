// Package validation checks inbound task requests before they reach the store.
//
// Structural constraints (non-blank title, known status) are declared as
// struct tags and evaluated by go-playground/validator. The due-date rule
// spans two fields and lives in CheckDueDate as a plain function of the
// request and the current time.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskservice/internal/models"
)

const (
	FieldRequest = "request"
	FieldTitle   = "title"
	FieldStatus  = "status"
	FieldDueDate = "dueDate"
)

const (
	MsgRequestRequired     = "Request body is required"
	MsgTitleMandatory      = "Title is a mandatory field"
	MsgStatusInvalid       = "Status must be one of PENDING IN_PROGRESS COMPLETED"
	MsgDueDateMandatory    = "Due date is mandatory for non-completed tasks"
	MsgDueDateInThePast    = "Due date should be today or a future date"
	MsgDueDateInvalid      = "Invalid task request: due date must be today or future unless status is COMPLETED"
	msgFieldInvalidPattern = "%s is invalid"
)

// tagMessages maps a failed validator tag on a json field to its message.
var tagMessages = map[string]string{
	FieldTitle + ".notblank": MsgTitleMandatory,
	FieldTitle + ".required": MsgTitleMandatory,
	FieldStatus + ".oneof":   MsgStatusInvalid,
}

// Violation is a single rejected field.
type Violation struct {
	Field   string
	Message string
}

// String renders the violation as "field: message".
func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Error is returned when a request breaks one or more rules.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns every violation rendered as "field: message", in order.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.String())
	}
	return out
}

// Validator evaluates task requests against the field and due-date rules.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator. A nil clock defaults to time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v, now: now}
}

// ValidateRequest runs the structural checks followed by the due-date rule
// and returns a *Error listing every violation, or nil.
func (v *Validator) ValidateRequest(req *models.TaskRequest) error {
	if req == nil {
		return &Error{Violations: []Violation{{Field: FieldRequest, Message: MsgRequestRequired}}}
	}

	var violations []Violation
	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate request: %w", err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{Field: fe.Field(), Message: messageFor(fe)})
		}
	}

	violations = append(violations, CheckDueDate(req, v.now())...)
	if len(violations) == 0 {
		return nil
	}
	return &Error{Violations: violations}
}

// ValidateStatus rejects values outside the status enumeration.
func (v *Validator) ValidateStatus(status models.Status) error {
	if status.Valid() {
		return nil
	}
	return &Error{Violations: []Violation{{Field: FieldStatus, Message: MsgStatusInvalid}}}
}

// CheckDueDate applies the due-date rule. Completed tasks need a due date
// but it may lie in the past; every other status needs one that is not
// before now.
func CheckDueDate(req *models.TaskRequest, now time.Time) []Violation {
	if req == nil {
		return []Violation{{Field: FieldRequest, Message: MsgRequestRequired}}
	}

	if req.Status == models.StatusCompleted {
		if req.DueDate == nil {
			return []Violation{{Field: FieldDueDate, Message: MsgDueDateInvalid}}
		}
		return nil
	}

	if req.DueDate == nil {
		return []Violation{{Field: FieldDueDate, Message: MsgDueDateMandatory}}
	}
	if req.DueDate.Time.Before(now) {
		return []Violation{{Field: FieldDueDate, Message: MsgDueDateInThePast}}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf(msgFieldInvalidPattern, fe.Field())
}
