// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/absmach/certmgmt"
	httpapi "github.com/absmach/certmgmt/api/http"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/certmgmt/authority/memory"
	"github.com/absmach/certmgmt/internal/uuid"
	"github.com/absmach/certmgmt/sdk"
	"github.com/absmach/certmgmt/sdk/mocks"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	instanceID = "5de9b29a-feb9-11ed-be56-0242ac120002"
	userName   = "alice"
	password   = "p1"
)

// countingTransport counts the HTTP exchanges performed by the SDK.
type countingTransport struct {
	calls atomic.Int32
}

func (ct *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ct.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func newService(t *testing.T, cfg authority.Config) authority.Service {
	svc, err := authority.NewService(memory.NewRepository(), uuid.NewMock(), cfg, authority.WithHashCost(bcrypt.MinCost))
	require.Nil(t, err)
	require.Nil(t, svc.Register(context.Background(), userName, password))

	return svc
}

func setupSDK(t *testing.T, svc authority.Service, free certmgmt.Deallocator) (sdk.SDK, *countingTransport) {
	ts := httptest.NewServer(httpapi.MakeHandler(svc, mocks.NewLogger(slog.LevelDebug), instanceID))
	t.Cleanup(ts.Close)

	transport := &countingTransport{}
	mgsdk := sdk.NewSDK(sdk.Config{
		SignURL:     ts.URL + certmgmt.SignPath,
		ArchiveURL:  ts.URL + certmgmt.ArchivePath,
		LookupURL:   ts.URL,
		Transport:   transport,
		Deallocator: free,
	})

	return mgsdk, transport
}
