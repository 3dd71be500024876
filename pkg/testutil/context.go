package testutil

import "net/http"

// WithBearer authenticates req the way a real client would.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
