// Package validation wraps go-playground/validator with the rules spacebook
// records must satisfy before they are written.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

// Error lists the failing fields by their JSON name. It matches
// common.ErrorValidation.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Error) Is(target error) bool { return target == common.ErrorValidation }

// Fail builds an *Error for a single field.
func Fail(field, msg string) error {
	return &Error{Fields: map[string]string{field: msg}}
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "categories", validateCategories)
	mustRegister(v, "accountkind", validateAccountKind)

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &Error{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "eqfield":
		return "must match " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "numeric":
		return "must be numeric"
	case "oneof":
		return "must be one of " + fe.Param()
	case "categories":
		return fmt.Sprintf("must list 1 to %d categories", common.MaxCategories)
	case "accountkind":
		return "unknown account kind"
	default:
		return "failed " + fe.Tag()
	}
}

func validateCategories(fl validator.FieldLevel) bool {
	n := len(models.SplitCategories(fl.Field().String()))
	return n >= 1 && n <= common.MaxCategories
}

func validateAccountKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case common.KindStandard, common.KindOwner, common.KindAdmin:
		return true
	default:
		return false
	}
}
