// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/pkcs12"
)

const archiveExt = ".p12"

var errInvalidPFX = errors.New("archive is not a valid PKCS#12 file")

func archiveRequest(args []string) certmgmt.ArchiveRequest {
	req := certmgmt.ArchiveRequest{
		Version:  certmgmt.ArchiveRequestVersion,
		Identity: certmgmt.NewIdentity(args[0], args[1]),
	}
	if len(args) > 2 {
		req.ArchiveName = []byte(args[2])
	}
	return req
}

var cmdArchive = []cobra.Command{
	{
		Use:   "store <user_name> <password> <archive_name> <pfx_file> [pfx_password]",
		Short: "Store archive",
		Long: `Stores a PKCS#12 credential archive under the given name, replacing an archive of the same name.
When the PFX password is given the archive is checked to decode before upload.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 4 || len(args) > 5 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			pfx, err := os.ReadFile(args[3])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			if len(args) == 5 {
				if _, err := pkcs12.ToPEM(pfx, args[4]); err != nil {
					logErrorCmd(*cmd, errors.Wrap(errInvalidPFX, err))
					return
				}
			}

			req := archiveRequest(args)
			req.TimeString = []byte(strconv.FormatInt(time.Now().Unix(), 10))
			req.Payload = pfx
			if err := sdk.StoreArchive(cmd.Context(), req); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOKCmd(*cmd)
		},
	},
	{
		Use:   "fetch <user_name> <password> <archive_name> [out_file]",
		Short: "Fetch archive",
		Long:  `Fetches a credential archive and saves it, by default to <archive_name>.p12.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 3 || len(args) > 4 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			out := args[2] + archiveExt
			if len(args) == 4 {
				out = args[3]
			}

			payload, sdkErr := sdk.FetchArchive(cmd.Context(), archiveRequest(args))
			if sdkErr != nil {
				logErrorCmd(*cmd, sdkErr)
				return
			}
			defer payload.Release()

			if err := saveToFile(out, payload.Bytes(), keyFileMode); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logSavedCmd(*cmd, out)
		},
	},
	{
		Use:   "remove <user_name> <password> <archive_name>",
		Short: "Remove archive",
		Long:  `Removes a credential archive.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 3 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := sdk.RemoveArchive(cmd.Context(), archiveRequest(args)); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			logOKCmd(*cmd)
		},
	},
	{
		Use:   "list <user_name> <password>",
		Short: "List archives",
		Long:  `Lists the names and times of the stored credential archives.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			list, sdkErr := sdk.ListArchives(cmd.Context(), archiveRequest(args))
			if sdkErr != nil {
				logErrorCmd(*cmd, sdkErr)
				return
			}
			defer list.Release()

			logJSONCmd(*cmd, list)
		},
	},
}

// NewArchiveCmd returns the archive command.
func NewArchiveCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "archive [store | fetch | remove | list]",
		Short: "Credential archive management",
		Long:  `Credential archive management: store, fetch, remove and list PKCS#12 archives.`,
	}

	for i := range cmdArchive {
		cmd.AddCommand(&cmdArchive[i])
	}

	return &cmd
}
