package kis

import "fmt"

// StatusError is returned when the upstream answers with a non-2xx status.
// Code distinguishes client-side rejections (4xx) from upstream outages (5xx).
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("kis http %d", e.Code)
	}
	return fmt.Sprintf("kis http %d: %s", e.Code, e.Body)
}

// ClientError reports whether the upstream rejected the request (4xx).
func (e *StatusError) ClientError() bool {
	return e.Code >= 400 && e.Code < 500
}
