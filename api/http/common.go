// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/certmgmt/internal/api"
	"github.com/absmach/supermq/pkg/errors"
)

// EncodeError encodes an error response. The body carries the error kind as
// the message and the first detail below it as the error, the shape the SDK
// decodes.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", api.ContentType)
	switch {
	case errors.Contains(err, certmgmt.ErrAuthentication):
		err = describe(certmgmt.ErrAuthentication, err)
		w.WriteHeader(http.StatusUnauthorized)

	case errors.Contains(err, certmgmt.ErrNotFound),
		errors.Contains(err, authority.ErrRootCANotFound):
		err = describe(certmgmt.ErrNotFound, err)
		w.WriteHeader(http.StatusNotFound)

	case errors.Contains(err, ErrUnsupportedContentType):
		err = ErrUnsupportedContentType
		w.WriteHeader(http.StatusUnsupportedMediaType)

	case errors.Contains(err, authority.ErrMalformedEntity),
		errors.Contains(err, authority.ErrMalformedCSR),
		errors.Contains(err, authority.ErrSubjectMismatch),
		errors.Contains(err, certmgmt.ErrInvalidParameter),
		errors.Contains(err, ErrInvalidRequest):
		err = describe(certmgmt.ErrInvalidParameter, err)
		w.WriteHeader(http.StatusBadRequest)

	case errors.Contains(err, authority.ErrConflict):
		err = describe(authority.ErrConflict, err)
		w.WriteHeader(http.StatusConflict)

	case errors.Contains(err, authority.ErrCreateEntity),
		errors.Contains(err, authority.ErrViewEntity),
		errors.Contains(err, authority.ErrRemoveEntity):
		err = unwrap(err)
		w.WriteHeader(http.StatusUnprocessableEntity)

	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorVal, ok := err.(errors.Error)
	if !ok {
		errorVal = errors.New(err.Error())
	}
	if err := json.NewEncoder(w).Encode(errorVal); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// describe returns kind wrapping the outermost detail of err that is not
// kind itself.
func describe(kind errors.Error, err error) error {
	wrapper, inner := errors.Unwrap(err)
	switch {
	case wrapper == nil && inner.Error() == kind.Error():
		return kind
	case wrapper == nil:
		return errors.Wrap(kind, inner)
	case wrapper.Error() == kind.Error():
		return errors.Wrap(kind, inner)
	default:
		return errors.Wrap(kind, wrapper)
	}
}

func unwrap(err error) error {
	wrapper, err := errors.Unwrap(err)
	if wrapper != nil {
		return wrapper
	}
	return err
}
