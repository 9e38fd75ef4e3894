package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault-backend/internal/platform/apperr"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// ErrorDTO is the JSON body of every failed request.
type ErrorDTO struct {
	Error struct {
		Code    apperr.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func ErrorBody(code apperr.Code, msg string) ErrorDTO {
	var e ErrorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func ErrorFromErr(err error) ErrorDTO {
	var api *apperr.APIError
	if errors.As(err, &api) {
		return ErrorBody(api.Code, api.Message)
	}
	return ErrorBody(apperr.CodeInternal, err.Error())
}

// WriteError maps err to its status code and error body.
func WriteError(c *gin.Context, err error) {
	c.JSON(apperr.ToHTTPStatus(err), ErrorFromErr(err))
}

// BadJSON is the reply for a body that does not decode.
func BadJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorBody(apperr.CodeInvalidArgument, "invalid json or missing required fields"))
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, apperr.ErrInvalid(name + " must be a positive integer")
	}
	return v, nil
}

// QueryDate parses an optional YYYY-MM-DD query value. Absent yields nil.
func QueryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, apperr.ErrInvalid(name + " must be a date (YYYY-MM-DD)")
	}
	return &t, nil
}

func QueryInt(c *gin.Context, name string, d int) int {
	s := c.Query(name)
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
