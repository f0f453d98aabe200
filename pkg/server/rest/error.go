package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server"
)

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

// ErrRender map a service error to its http status. errors without a server.Error code are 500.
func ErrRender(err error) render.Renderer {
	status := getStatusCode(err)
	text := http.StatusText(status)
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     text,
		AppCode:        int64(status),
		ErrorText:      errorMessage(err),
	}
}

func getStatusCode(err error) int {
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	case server.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage user facing message only, the wrapped cause stays in the logs.
func errorMessage(err error) string {
	var ierr *server.Error
	if errors.As(err, &ierr) {
		return ierr.Message()
	}
	return "internal server error"
}
