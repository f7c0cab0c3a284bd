// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"
)

const (
	// ContentType represents JSON content type.
	ContentType = "application/json"

	// PEMContentType represents PEM content type.
	PEMContentType = "application/x-pem-file"
)

// Version is the service version reported by the health endpoint.
var Version = "0.1.0"

// Response contains HTTP response specific methods.
type Response interface {
	// Code returns HTTP response code.
	Code() int

	// Headers returns map of HTTP headers with their values.
	Headers() map[string]string

	// Empty indicates if HTTP response has content.
	Empty() bool
}

// EncodeResponse encodes successful response.
func EncodeResponse(_ context.Context, w http.ResponseWriter, response any) error {
	if ar, ok := response.(Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

// LoggingErrorEncoder logs every failed request before encoding the error.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		logger.Debug(fmt.Sprintf("Request failed: %s", err))
		enc(ctx, err, w)
	}
}

type healthRes struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Description string `json:"description"`
	InstanceID  string `json:"instance_id"`
}

// Health returns the health check handler of the service.
func Health(service, instanceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		res := healthRes{
			Status:      "pass",
			Version:     Version,
			Description: service + " service",
			InstanceID:  instanceID,
		}

		w.Header().Set("Content-Type", "application/health+json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(res); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}
