// Package validation checks command options before a run starts.
package validation

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/councilvotes/pkg/errors"
)

// Validator validates option structs using their `validate` tags.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their `flag` tag name.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" && name != "-" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	_ = v.RegisterValidation("notancestor", notAncestor)
	return &Validator{v: v}
}

// notAncestor fails when the directory in the field is the directory named
// by the param field, or one of its ancestors.
func notAncestor(fl validator.FieldLevel) bool {
	other := reflect.Indirect(fl.Parent()).FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	dir, target := fl.Field().String(), other.String()
	if dir == "" || target == "" {
		return true
	}
	return !Contains(dir, target)
}

// Contains reports whether target is dir itself or lies somewhere below it.
func Contains(dir, target string) bool {
	a, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	b, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(a, b)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Validate checks i and returns the first failure as a ValidationError.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !stderrors.As(err, &fields) || len(fields) == 0 {
		return errors.WrapValidation("", err)
	}
	fe := fields[0]
	return errors.NewValidationError(fe.Field(), fe.Value(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "dir":
		return "must be an existing directory"
	case "file":
		return "must be an existing file"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "nefield":
		return "must differ from " + fe.Param()
	case "notancestor":
		return "must not be or contain " + fe.Param()
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
