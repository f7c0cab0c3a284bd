// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	var freed atomic.Int32
	free := certmgmt.DeallocatorFunc(func(buf []byte) {
		freed.Add(1)
		clear(buf)
	})

	svc := newService(t, authority.Config{})
	mgsdk, _ := setupSDK(t, svc, free)
	identity := certmgmt.NewIdentity(userName, password)
	pfx := []byte{0x30, 0x82, 0x01, 0x00, 0xde, 0xad, 0xbe, 0xef}

	err := mgsdk.StoreArchive(context.Background(), certmgmt.ArchiveRequest{
		Identity:    identity,
		ArchiveName: []byte("home-mac"),
		TimeString:  []byte("1700000000"),
		Payload:     pfx,
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	list, err := mgsdk.ListArchives(context.Background(), certmgmt.ArchiveRequest{Identity: identity})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	require.Equal(t, 1, list.Len())
	assert.Equal(t, []byte("home-mac"), list.Entries()[0].ArchiveName)
	assert.Equal(t, []byte("1700000000"), list.Entries()[0].TimeString)
	assert.Nil(t, list.Release())
	assert.Equal(t, int32(2), freed.Load(), "list release should free every entry buffer")
	assert.Equal(t, 0, list.Len())
	assert.True(t, errors.Contains(list.Release(), certmgmt.ErrAlreadyReleased))
	assert.Equal(t, int32(2), freed.Load(), "second release should not free again")

	payload, err := mgsdk.FetchArchive(context.Background(), certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac")})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, pfx, payload.Bytes())
	assert.Nil(t, payload.Release())
	assert.Nil(t, payload.Bytes())
	assert.True(t, errors.Contains(payload.Release(), certmgmt.ErrAlreadyReleased))

	err = mgsdk.RemoveArchive(context.Background(), certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac")})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	_, err = mgsdk.FetchArchive(context.Background(), certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac")})
	assert.True(t, errors.Contains(err, certmgmt.ErrNotFound), fmt.Sprintf("expected %s got %s", certmgmt.ErrNotFound, err))

	list, err = mgsdk.ListArchives(context.Background(), certmgmt.ArchiveRequest{Identity: identity})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, 0, list.Len())
	assert.Nil(t, list.Release())
}

func TestArchiveErrors(t *testing.T) {
	svc := newService(t, authority.Config{})
	mgsdk, transport := setupSDK(t, svc, nil)
	identity := certmgmt.NewIdentity(userName, password)

	err := mgsdk.StoreArchive(context.Background(), certmgmt.ArchiveRequest{
		Identity:    identity,
		ArchiveName: []byte("work-mac"),
		TimeString:  []byte("1700000000"),
		Payload:     []byte("pfx"),
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cases := []struct {
		desc  string
		op    certmgmt.ArchiveOp
		req   certmgmt.ArchiveRequest
		calls int32
		err   error
	}{
		{
			desc:  "store with wrong password",
			op:    certmgmt.ArchiveStore,
			req:   certmgmt.ArchiveRequest{Identity: certmgmt.NewIdentity(userName, "wrong"), ArchiveName: []byte("home-mac"), TimeString: []byte("1"), Payload: []byte("pfx")},
			calls: 1,
			err:   certmgmt.ErrAuthentication,
		},
		{
			desc:  "store without time string",
			op:    certmgmt.ArchiveStore,
			req:   certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac"), Payload: []byte("pfx")},
			calls: 0,
			err:   certmgmt.ErrInvalidParameter,
		},
		{
			desc:  "store without payload",
			op:    certmgmt.ArchiveStore,
			req:   certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac"), TimeString: []byte("1")},
			calls: 0,
			err:   certmgmt.ErrInvalidParameter,
		},
		{
			desc:  "fetch without archive name",
			op:    certmgmt.ArchiveFetch,
			req:   certmgmt.ArchiveRequest{Identity: identity},
			calls: 0,
			err:   certmgmt.ErrInvalidParameter,
		},
		{
			desc:  "fetch archive of unknown user",
			op:    certmgmt.ArchiveFetch,
			req:   certmgmt.ArchiveRequest{Identity: certmgmt.NewIdentity("bob", password), ArchiveName: []byte("work-mac")},
			calls: 1,
			err:   certmgmt.ErrAuthentication,
		},
		{
			desc:  "remove missing archive",
			op:    certmgmt.ArchiveRemove,
			req:   certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac")},
			calls: 1,
			err:   certmgmt.ErrNotFound,
		},
		{
			desc:  "list with unsupported version",
			op:    certmgmt.ArchiveListOp,
			req:   certmgmt.ArchiveRequest{Version: 2, Identity: identity},
			calls: 0,
			err:   certmgmt.ErrInvalidParameter,
		},
		{
			desc:  "list without credentials",
			op:    certmgmt.ArchiveListOp,
			req:   certmgmt.ArchiveRequest{},
			calls: 0,
			err:   certmgmt.ErrInvalidParameter,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			before := transport.calls.Load()
			var err errors.SDKError
			switch tc.op {
			case certmgmt.ArchiveStore:
				err = mgsdk.StoreArchive(context.Background(), tc.req)
			case certmgmt.ArchiveFetch:
				_, err = mgsdk.FetchArchive(context.Background(), tc.req)
			case certmgmt.ArchiveRemove:
				err = mgsdk.RemoveArchive(context.Background(), tc.req)
			case certmgmt.ArchiveListOp:
				_, err = mgsdk.ListArchives(context.Background(), tc.req)
			}
			assert.Equal(t, tc.calls, transport.calls.Load()-before, fmt.Sprintf("%s: unexpected number of requests", tc.desc))
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s, got %s", tc.desc, tc.err, err))
		})
	}
}
