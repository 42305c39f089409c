// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rowvm

import "fmt"

// evalErrorKind is a small closed enumeration of the four programmer
// errors that are the only failure modes inside evaluation. It is modeled as an int32-backed enum with a
// switch-based Error(), the same shape as vm.bcerr in vm/bytecode.go.
type evalErrorKind int32

const (
	errUnsupportedElementType evalErrorKind = iota
	errInvalidOperatorType
	errOversizedIntermediate
	errOutputAsInput
)

// evalError is raised only via panic: it represents a programmer
// error spec.md says "must be unreachable in well-formed plans" and
// is never recovered by Evaluate. rowplan.Plan.Validate and
// rowops.ValidatePlan exist precisely so no well-formed plan ever
// triggers one.
type evalError struct {
	kind   evalErrorKind
	detail string
}

func (e evalError) Error() string {
	switch e.kind {
	case errUnsupportedElementType:
		return fmt.Sprintf("rowvm: unsupported element type at resolver: %s", e.detail)
	case errInvalidOperatorType:
		return fmt.Sprintf("rowvm: invalid (operator, type) combination: %s", e.detail)
	case errOversizedIntermediate:
		return fmt.Sprintf("rowvm: intermediate write exceeds the 8-byte slot size: %s", e.detail)
	case errOutputAsInput:
		return fmt.Sprintf("rowvm: input reference uses the OUTPUT table source: %s", e.detail)
	default:
		return "rowvm: evaluation error"
	}
}

func assertf(ok bool, kind evalErrorKind, format string, args ...any) {
	if !ok {
		panic(evalError{kind: kind, detail: fmt.Sprintf(format, args...)})
	}
}
