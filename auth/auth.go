// Package auth decorates built requests with credentials.
//
// Authentication is a capability interface: implementations may add or
// replace headers but must not touch the body or query. New schemes (signed
// requests, etc.) plug in without changing the invocation proxy.
package auth

import (
	"encoding/base64"

	"httprpc/request"
)

// Authentication applies credentials to a request immediately before
// dispatch, after the request is fully built.
type Authentication interface {
	Apply(req *request.EncodedRequest)
}

// None is the identity scheme: no credentials.
type None struct{}

func (None) Apply(*request.EncodedRequest) {}

// Basic implements HTTP Basic authentication.
type Basic struct {
	Username string
	Password string
}

func (b Basic) Apply(req *request.EncodedRequest) {
	credentials := base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
	req.Header.Set("Authorization", "Basic "+credentials)
}

// Bearer sends a bearer token.
type Bearer struct {
	Token string
}

func (b Bearer) Apply(req *request.EncodedRequest) {
	req.Header.Set("Authorization", "Bearer "+b.Token)
}
