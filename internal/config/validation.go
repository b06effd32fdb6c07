package config

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/zxhio/pinball/internal/errcode"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("cpulist", validateCPUListTag); err != nil {
		panic(err)
	}

	// Report field names as they appear in the file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// cpulist accepts only ASCII digits, '-' and ','. The value ends up in a
// root-owned procfs file, so nothing else is let through.
func validateCPUListTag(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '-' && c != ',' {
			return false
		}
	}
	return true
}

// ValidateInterfaceName rejects anything but a non-empty ASCII alphanumeric
// name. The name is passed to an external command.
func ValidateInterfaceName(name string) error {
	if err := validate.Var(name, "required,alphanum"); err != nil {
		return errcode.New(errcode.CodeInvalid, "interface name %q must be ASCII alphanumeric", name)
	}
	return nil
}

// ValidateAffinityList rejects affinity lists containing characters other
// than ASCII digits, '-' and ','.
func ValidateAffinityList(list string) error {
	if err := validate.Var(list, "required,cpulist"); err != nil {
		return errcode.New(errcode.CodeInvalid, "affinity list %q must contain only digits, '-' and ','", list)
	}
	return nil
}

// ParseIRQ parses an irq table key as an unsigned 32-bit interrupt number.
func ParseIRQ(key string) (uint32, error) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return 0, errcode.New(errcode.CodeInvalid, "irq %q is not an unsigned 32-bit integer", key)
	}
	return uint32(n), nil
}

// IRQAffinity is one validated entry of an interface's irqs table.
type IRQAffinity struct {
	IRQ      uint32
	Affinity string
}

// IRQAffinities validates the interface's irqs table, see ParseIRQAffinities.
func (n *NetworkInterface) IRQAffinities() ([]IRQAffinity, error) {
	return ParseIRQAffinities(n.IRQs)
}

// ParseIRQAffinities validates every entry of irqs and returns them in
// ascending irq order. Nothing is returned if any entry is invalid.
func ParseIRQAffinities(irqs map[string]string) ([]IRQAffinity, error) {
	keys := make([]string, 0, len(irqs))
	for key := range irqs {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	res := make([]IRQAffinity, 0, len(irqs))
	for _, key := range keys {
		affinity := irqs[key]
		irq, err := ParseIRQ(key)
		if err != nil {
			return nil, err
		}
		if err := ValidateAffinityList(affinity); err != nil {
			return nil, errors.Wrapf(err, "irq %d", irq)
		}
		res = append(res, IRQAffinity{IRQ: irq, Affinity: affinity})
	}
	slices.SortFunc(res, func(a, b IRQAffinity) int {
		switch {
		case a.IRQ < b.IRQ:
			return -1
		case a.IRQ > b.IRQ:
			return 1
		}
		return 0
	})
	return res, nil
}

// check runs the struct validation of v and joins the failures as one
// errcode.CodeConfig error.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errcode.NewError(errcode.CodeConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(e), validationMessage(e)))
	}
	return errcode.NewMessage(errcode.CodeConfig, strings.Join(msgs, "; "))
}

// fieldPath drops the root struct name, "nameKeys.profile[0].name" -> "profile[0].name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return ns
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "alphanum":
		return "must be ASCII alphanumeric"
	case "cpulist":
		return "must contain only digits, '-' and ','"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
