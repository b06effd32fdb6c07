package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

type Code int

const (
	CodeSuccess  Code = 0
	CodeInternal Code = iota + 1000
	CodeConfig
	CodeNotExist
	CodeInvalid
	CodeExec
	CodeAffinity
)

var code2str = map[Code]string{
	CodeSuccess:  "success",
	CodeInternal: "internal error",
	CodeConfig:   "config error",
	CodeNotExist: "not exist",
	CodeInvalid:  "invalid argument",
	CodeExec:     "command failed",
	CodeAffinity: "irq affinity failed",
}

func (c Code) String() string {
	s, ok := code2str[c]
	if !ok {
		return fmt.Sprintf("unknown code: %d", int(c))
	}
	return s
}

type ErrorCode struct {
	code    Code
	message string
}

func (e ErrorCode) Code() Code { return e.code }
func (e ErrorCode) Message() string {
	if e.code == CodeSuccess {
		return e.code.String()
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e ErrorCode) Error() string { return e.Message() }

func New(code Code, format string, a ...any) ErrorCode {
	return ErrorCode{
		code:    code,
		message: fmt.Sprintf(format, a...),
	}
}

func NewMessage(code Code, msg string) ErrorCode {
	return ErrorCode{code: code, message: msg}
}

func NewError(code Code, err error) ErrorCode {
	return NewMessage(code, err.Error())
}

// CodeOf returns the code of the first ErrorCode in err's chain,
// CodeInternal for any other non-nil error and CodeSuccess for nil.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	var ec ErrorCode
	if errors.As(err, &ec) {
		return ec.code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
