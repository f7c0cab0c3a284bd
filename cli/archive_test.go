// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/cli"
	sdkmocks "github.com/absmach/certmgmt/sdk/mocks"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	archiveCmd  = "archive"
	archiveName = "home-mac"
)

func archiveMatcher(name string) any {
	return mock.MatchedBy(func(req certmgmt.ArchiveRequest) bool {
		return string(req.Identity.UserName) == userName &&
			string(req.Identity.Password) == password &&
			string(req.ArchiveName) == name
	})
}

func TestStoreArchiveCmd(t *testing.T) {
	sdkMock := new(sdkmocks.MockSDK)
	cli.SetSDK(sdkMock)

	dir := t.TempDir()
	pfxPath := filepath.Join(dir, "home.p12")
	pfx := []byte("not a real pfx")
	require.Nil(t, os.WriteFile(pfxPath, pfx, 0o600))
	authErr := errors.NewSDKErrorWithStatus(errors.Wrap(certmgmt.ErrAuthentication, errors.New("invalid credentials")), http.StatusUnauthorized)

	cases := []struct {
		desc          string
		args          []string
		sdkErr        errors.SDKError
		errLogMessage string
		logType       outputLog
	}{
		{
			desc:    "store archive",
			args:    []string{userName, password, archiveName, pfxPath},
			logType: okLog,
		},
		{
			desc:          "store archive with invalid credentials",
			args:          []string{userName, password, archiveName, pfxPath},
			sdkErr:        authErr,
			errLogMessage: fmt.Sprintf("\nerror: %s\n\n", authErr),
			logType:       errLog,
		},
		{
			desc:          "store archive that does not decode",
			args:          []string{userName, password, archiveName, pfxPath, "pfx-password"},
			errLogMessage: "archive is not a valid PKCS#12 file",
			logType:       errLog,
		},
		{
			desc:          "store missing file",
			args:          []string{userName, password, archiveName, filepath.Join(dir, "missing.p12")},
			errLogMessage: "no such file or directory",
			logType:       errLog,
		},
		{
			desc:    "store archive with invalid args",
			args:    []string{userName, password, archiveName},
			logType: usageLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rootCmd := newRootCmd(cli.NewArchiveCmd())
			sdkMock.On("StoreArchive", mock.Anything, mock.MatchedBy(func(req certmgmt.ArchiveRequest) bool {
				return string(req.ArchiveName) == archiveName && string(req.Payload) == string(pfx) && len(req.TimeString) > 0
			})).Return(tc.sdkErr)

			out := executeCommand(t, rootCmd, append([]string{archiveCmd, "store"}, tc.args...)...)

			switch tc.logType {
			case okLog:
				assert.True(t, strings.Contains(out, "ok"), fmt.Sprintf("%s unexpected response: %s", tc.desc, out))
			case errLog:
				assert.Contains(t, out, tc.errLogMessage, fmt.Sprintf("%s unexpected error response: expected %s got errLogMessage:%s", tc.desc, tc.errLogMessage, out))
			case usageLog:
				assert.True(t, strings.Contains(out, "usage"), fmt.Sprintf("%s invalid usage: %s", tc.desc, out))
			}
			resetSDK(sdkMock)
		})
	}
}

func TestFetchArchiveCmd(t *testing.T) {
	sdkMock := new(sdkmocks.MockSDK)
	cli.SetSDK(sdkMock)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "fetched.p12")
	notFound := errors.NewSDKErrorWithStatus(certmgmt.ErrNotFound, http.StatusNotFound)

	cases := []struct {
		desc          string
		args          []string
		data          []byte
		sdkErr        errors.SDKError
		errLogMessage string
		logType       outputLog
	}{
		{
			desc:    "fetch archive",
			args:    []string{userName, password, archiveName, outPath},
			data:    []byte("pfx-home-mac"),
			logType: entityLog,
		},
		{
			desc:          "fetch missing archive",
			args:          []string{userName, password, "missing", outPath},
			sdkErr:        notFound,
			errLogMessage: fmt.Sprintf("\nerror: %s\n\n", notFound),
			logType:       errLog,
		},
		{
			desc:    "fetch archive with invalid args",
			args:    []string{userName, password},
			logType: usageLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rootCmd := newRootCmd(cli.NewArchiveCmd())
			payload := certmgmt.NewArchivePayload(append([]byte(nil), tc.data...), nil)
			name := ""
			if len(tc.args) > 2 {
				name = tc.args[2]
			}
			sdkMock.On("FetchArchive", mock.Anything, archiveMatcher(name)).Return(payload, tc.sdkErr)

			out := executeCommand(t, rootCmd, append([]string{archiveCmd, "fetch"}, tc.args...)...)

			switch tc.logType {
			case entityLog:
				assert.Equal(t, fmt.Sprintf("Saved %s\n", outPath), out)
				saved, err := os.ReadFile(outPath)
				require.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))
				assert.Equal(t, tc.data, saved)
				assert.Nil(t, payload.Bytes(), "payload should be released after saving")
			case errLog:
				assert.Equal(t, tc.errLogMessage, out, fmt.Sprintf("%s unexpected error response: expected %s got errLogMessage:%s", tc.desc, tc.errLogMessage, out))
			case usageLog:
				assert.True(t, strings.Contains(out, "usage"), fmt.Sprintf("%s invalid usage: %s", tc.desc, out))
			}
			resetSDK(sdkMock)
		})
	}
}

func TestRemoveArchiveCmd(t *testing.T) {
	sdkMock := new(sdkmocks.MockSDK)
	cli.SetSDK(sdkMock)

	notFound := errors.NewSDKErrorWithStatus(certmgmt.ErrNotFound, http.StatusNotFound)

	cases := []struct {
		desc          string
		args          []string
		sdkErr        errors.SDKError
		errLogMessage string
		logType       outputLog
	}{
		{
			desc:    "remove archive",
			args:    []string{userName, password, archiveName},
			logType: okLog,
		},
		{
			desc:          "remove missing archive",
			args:          []string{userName, password, archiveName},
			sdkErr:        notFound,
			errLogMessage: fmt.Sprintf("\nerror: %s\n\n", notFound),
			logType:       errLog,
		},
		{
			desc:    "remove archive with invalid args",
			args:    []string{userName, password, archiveName, extraArg},
			logType: usageLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rootCmd := newRootCmd(cli.NewArchiveCmd())
			sdkMock.On("RemoveArchive", mock.Anything, archiveMatcher(archiveName)).Return(tc.sdkErr)

			out := executeCommand(t, rootCmd, append([]string{archiveCmd, "remove"}, tc.args...)...)

			switch tc.logType {
			case okLog:
				assert.Equal(t, "\nok\n\n", out)
			case errLog:
				assert.Equal(t, tc.errLogMessage, out, fmt.Sprintf("%s unexpected error response: expected %s got errLogMessage:%s", tc.desc, tc.errLogMessage, out))
			case usageLog:
				assert.True(t, strings.Contains(out, "usage"), fmt.Sprintf("%s invalid usage: %s", tc.desc, out))
			}
			resetSDK(sdkMock)
		})
	}
}

func TestListArchivesCmd(t *testing.T) {
	sdkMock := new(sdkmocks.MockSDK)
	cli.SetSDK(sdkMock)

	cases := []struct {
		desc    string
		args    []string
		entries []certmgmt.ArchiveEntry
		names   []string
		logType outputLog
	}{
		{
			desc: "list archives",
			args: []string{userName, password},
			entries: []certmgmt.ArchiveEntry{
				{ArchiveName: []byte("home-mac"), TimeString: []byte("1700000000")},
				{ArchiveName: []byte("work-mac"), TimeString: []byte("1700000100")},
			},
			names:   []string{"home-mac", "work-mac"},
			logType: entityLog,
		},
		{
			desc:    "list no archives",
			args:    []string{userName, password},
			names:   []string{},
			logType: entityLog,
		},
		{
			desc:    "list archives with invalid args",
			args:    []string{userName},
			logType: usageLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rootCmd := newRootCmd(cli.NewArchiveCmd())
			list := certmgmt.NewArchiveList(tc.entries, nil)
			sdkMock.On("ListArchives", mock.Anything, archiveMatcher("")).Return(list, nil)

			out := executeCommand(t, rootCmd, append([]string{archiveCmd, "list"}, tc.args...)...)

			switch tc.logType {
			case entityLog:
				var res struct {
					Archives []struct {
						ArchiveName string `json:"archive_name"`
						TimeString  string `json:"time_string"`
					} `json:"archives"`
				}
				err := json.Unmarshal([]byte(out), &res)
				assert.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))
				names := []string{}
				for _, a := range res.Archives {
					names = append(names, a.ArchiveName)
				}
				assert.Equal(t, tc.names, names)
				assert.Equal(t, 0, list.Len(), "list should be released after printing")
			case usageLog:
				assert.True(t, strings.Contains(out, "usage"), fmt.Sprintf("%s invalid usage: %s", tc.desc, out))
			}
			resetSDK(sdkMock)
		})
	}
}
