package adt

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrorCode classifies a Bottom by the broad reason it was raised.
type ErrorCode int

const (
	// StructuralError covers unknown paths, wrong field kind, alias
	// cycles, cycle-depth-exceeded and inline-primitive misuse.
	StructuralError ErrorCode = iota
	TypeError
	DomainError
	RegistryError
	LayeringError
	TypecheckError
)

func (c ErrorCode) String() string {
	switch c {
	case StructuralError:
		return "structural"
	case TypeError:
		return "type"
	case DomainError:
		return "domain"
	case RegistryError:
		return "registry"
	case LayeringError:
		return "layering"
	case TypecheckError:
		return "typecheck"
	default:
		return "unknown"
	}
}

// Bottom is the core's sole error value. Every fatal condition --
// structural, type, domain, registry or layering -- is reported as a
// Bottom carrying a code and a wrapped cause, mirroring the role
// cue/internal/adt.Bottom plays as the evaluator's universal error value.
type Bottom struct {
	Code ErrorCode
	Err  error
}

func (b *Bottom) Error() string {
	return fmt.Sprintf("%s: %v", b.Code, b.Err)
}

func (b *Bottom) Unwrap() error { return b.Err }

// Errf builds a Bottom of the given code, wrapping a formatted cause.
func Errf(code ErrorCode, format string, args ...interface{}) *Bottom {
	return &Bottom{Code: code, Err: xerrors.Errorf(format, args...)}
}

// Wrap builds a Bottom of the given code around an existing error.
func Wrap(code ErrorCode, err error) *Bottom {
	if err == nil {
		return nil
	}
	return &Bottom{Code: code, Err: xerrors.Errorf("%w", err)}
}

// IsBottom reports whether err is (or wraps) a *Bottom.
func IsBottom(err error) bool {
	var b *Bottom
	return xerrors.As(err, &b)
}
