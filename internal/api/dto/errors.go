package dto

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/session"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
	"github.com/GriffinCanCode/ucalc/internal/units"
	"github.com/GriffinCanCode/ucalc/internal/utils"
)

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorClass struct {
	target error
	status int
	code   string
}

var errorClasses = []errorClass{
	{calc.ErrSyntax, http.StatusBadRequest, "syntax_error"},
	{catalog.ErrUnresolvedUnit, http.StatusBadRequest, "unresolved_unit"},
	{calc.ErrUndefinedVariable, http.StatusBadRequest, "undefined_variable"},
	{units.ErrIncompatibleUnits, http.StatusBadRequest, "incompatible_units"},
	{units.ErrInvalidUnit, http.StatusBadRequest, "invalid_unit"},
	{units.ErrInvalidOperation, http.StatusBadRequest, "invalid_operation"},
	{units.ErrInvalidValue, http.StatusBadRequest, "invalid_value"},
	{id.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{utils.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{session.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{session.ErrSnapshotNotFound, http.StatusNotFound, "snapshot_not_found"},
}

// Classify maps an error to an HTTP status and a stable error code.
func Classify(err error) (int, string) {
	for _, ec := range errorClasses {
		if errors.Is(err, ec.target) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// NewError builds the error body for err.
func NewError(err error) Error {
	_, code := Classify(err)
	return Error{Error: err.Error(), Code: code}
}
