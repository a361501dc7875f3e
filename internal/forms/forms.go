// Package forms binds submitted form values to declarative structs and
// validates them. Validation is all-or-nothing: a form that fails validation
// must not cause any state change.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finhub/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("income_type", func(fl validator.FieldLevel) bool {
		return models.IncomeType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("outcome_type", func(fl validator.FieldLevel) bool {
		return models.OutcomeType(fl.Field().String()).Valid()
	})
	return v
}

// LoginForm carries a login submission.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// NewLoginForm binds a LoginForm from submitted values.
func NewLoginForm(v url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(v.Get("username")),
		Password: v.Get("password"),
	}
}

// Validate checks the form and returns a user-presentable error.
func (f *LoginForm) Validate() error {
	return describe(validate.Struct(f))
}

// RegisterForm carries a registration submission. ConfirmPassword must equal
// Password.
type RegisterForm struct {
	Username        string `validate:"required"`
	Name            string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// NewRegisterForm binds a RegisterForm from submitted values.
func NewRegisterForm(v url.Values) *RegisterForm {
	return &RegisterForm{
		Username:        strings.TrimSpace(v.Get("username")),
		Name:            strings.TrimSpace(v.Get("name")),
		Password:        v.Get("password"),
		ConfirmPassword: v.Get("confirm_password"),
	}
}

// Validate checks the form and returns a user-presentable error.
func (f *RegisterForm) Validate() error {
	return describe(validate.Struct(f))
}

// EditUserForm carries a profile edit. All fields are optional; unspecified
// fields keep their prior values. When a new password is supplied the
// confirmation must match it.
type EditUserForm struct {
	Username        string
	Name            string
	Password        string
	ConfirmPassword string `validate:"eqfield=Password"`
}

// NewEditUserForm binds an EditUserForm from submitted values.
func NewEditUserForm(v url.Values) *EditUserForm {
	return &EditUserForm{
		Username:        strings.TrimSpace(v.Get("username")),
		Name:            strings.TrimSpace(v.Get("name")),
		Password:        v.Get("password"),
		ConfirmPassword: v.Get("confirm_password"),
	}
}

// Validate checks the form and returns a user-presentable error.
func (f *EditUserForm) Validate() error {
	return describe(validate.Struct(f))
}

// DeleteUserForm carries the confirm/cancel choice of the account deletion
// page, encoded as two submit buttons on one form.
type DeleteUserForm struct {
	Confirmed bool
	Cancelled bool
}

// NewDeleteUserForm binds a DeleteUserForm from submitted values.
func NewDeleteUserForm(v url.Values) *DeleteUserForm {
	return &DeleteUserForm{
		Confirmed: v.Has("confirm"),
		Cancelled: v.Has("cancel"),
	}
}

// TransactionForm carries an income or outcome submission. The category
// vocabulary it validates against is bound per request through Kind, since
// the allowed set differs between the two transaction kinds.
type TransactionForm struct {
	Kind        models.TransactionKind `validate:"-"`
	Amount      float64                `validate:"required,gt=0"`
	Type        string                 `validate:"required"`
	Description string                 `validate:"max=255"`
	Date        time.Time
}

// NewTransactionForm binds a TransactionForm of the given kind from
// submitted values. A malformed amount binds as zero and fails validation.
func NewTransactionForm(kind models.TransactionKind, v url.Values) *TransactionForm {
	f := &TransactionForm{
		Kind:        kind,
		Type:        strings.TrimSpace(v.Get("type")),
		Description: strings.TrimSpace(v.Get("description")),
	}
	if amount, err := strconv.ParseFloat(strings.TrimSpace(v.Get("amount")), 64); err == nil {
		f.Amount = amount
	}
	if date, err := time.Parse("2006-01-02", v.Get("date")); err == nil {
		f.Date = date
	}
	return f
}

// Validate checks the form, including membership of Type in the vocabulary
// selected by Kind.
func (f *TransactionForm) Validate() error {
	if err := describe(validate.Struct(f)); err != nil {
		return err
	}
	tag := "required,income_type"
	if f.Kind == models.KindOutcome {
		tag = "required,outcome_type"
	}
	if err := validate.Var(f.Type, tag); err != nil {
		return fmt.Errorf("%q is not a valid %s category", f.Type, f.Kind)
	}
	return nil
}

// describe converts validator errors into a single user-presentable message.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fieldName(fe.Field()))
	case "eqfield":
		return fmt.Errorf("%s must match %s", fieldName(fe.Field()), fieldName(fe.Param()))
	case "gt":
		return fmt.Errorf("%s must be greater than %s", fieldName(fe.Field()), fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", fieldName(fe.Field()), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fieldName(fe.Field()))
	}
}

// fieldName turns a struct field name into a label, e.g. "ConfirmPassword"
// into "Confirm Password".
func fieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
