package codes

import (
	"net/http"

	"pledge/core"
)

// HTTPStatus maps a business error code to an http status
func HTTPStatus(err error) int {
	code, ok := err.(core.ErrorCode)
	if !ok {
		return http.StatusInternalServerError
	}

	switch code {
	case core.ErrUnknownAsset, core.ErrUnknownLoan, core.ErrUnknownUser:
		return http.StatusNotFound
	case core.ErrOperationForbidden:
		return http.StatusForbidden
	case core.ErrInvalidAmount, core.ErrInvalidPrice:
		return http.StatusBadRequest
	default:
		// business rejections surface as 400 with the code in the body
		return http.StatusBadRequest
	}
}

// Code extracts the business code, 0 for unclassified errors
func Code(err error) int {
	if code, ok := err.(core.ErrorCode); ok {
		return int(code)
	}

	return 0
}
