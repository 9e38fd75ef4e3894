package apperr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"

	mysql "github.com/go-sql-driver/mysql"
)

// ===== Error model (shared by every service) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT" // ValidationError
	CodeUnavailable     Code = "UNAVAILABLE"      // ConnectionError
	CodeBusinessRule    Code = "BUSINESS_RULE"    // BusinessError（在庫不足など）
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT" // DuplicateError
	CodeInternal        Code = "INTERNAL" // PersistenceError
)

// SQLSTATE raised by SIGNAL in the stored procedures.
const businessSQLState = "45000"

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func (e *APIError) Unwrap() error { return e.cause }

func ErrInvalid(msg string) *APIError     { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnavailable(msg string) *APIError { return &APIError{Code: CodeUnavailable, Message: msg} }
func ErrBusiness(msg string) *APIError    { return &APIError{Code: CodeBusinessRule, Message: msg} }
func ErrNotFound(msg string) *APIError    { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError    { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError    { return &APIError{Code: CodeInternal, Message: msg} }

// Wrap keeps the driver error reachable through errors.Is / errors.As.
func Wrap(code Code, msg string, cause error) *APIError {
	return &APIError{Code: code, Message: msg, cause: cause}
}

// Is reports whether err is an *APIError with the given code.
func Is(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

// CodeOf returns the code of err, INTERNAL for untyped errors.
func CodeOf(err error) Code {
	var api *APIError
	if errors.As(err, &api) {
		return api.Code
	}
	return CodeInternal
}

// FromStore classifies an error returned by database/sql or the MySQL driver.
// Already typed errors pass through unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var api *APIError
	if errors.As(err, &api) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(CodeNotFound, "record not found", err)
	}
	if IsConnectionError(err) {
		return Wrap(CodeUnavailable, "database unavailable: "+err.Error(), err)
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		if string(me.SQLState[:]) == businessSQLState {
			// SIGNAL のメッセージはそのまま表示する
			return Wrap(CodeBusinessRule, me.Message, err)
		}
		switch me.Number {
		case 1062: // duplicate key
			return Wrap(CodeConflict, "duplicate entry: "+me.Message, err)
		case 1451, 1452: // foreign key constraint fails
			return Wrap(CodeInvalidArgument, "invalid reference: "+me.Message, err)
		case 1264, 3819: // out of range / check constraint
			return Wrap(CodeInvalidArgument, me.Message, err)
		}
	}
	return Wrap(CodeInternal, "database error: "+err.Error(), err)
}

// IsConnectionError reports failures to reach the store or to authenticate.
func IsConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1044, 1045, 1049: // access denied / unknown database
			return true
		}
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
