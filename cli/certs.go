// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"crypto"
	"crypto/x509"
	"os"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/csr"
	ctxsdk "github.com/absmach/certmgmt/sdk"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	pemCertificate = "CERTIFICATE"
	pemCSR         = "CERTIFICATE REQUEST"
	pemPrivateKey  = "PRIVATE KEY"
)

// Keep SDK handle in global var.
var sdk ctxsdk.SDK

func SetSDK(s ctxsdk.SDK) {
	sdk = s
}

type enrollmentRes struct {
	Certificate string `json:"certificate,omitempty"`
	CSR         string `json:"csr,omitempty"`
	Queued      bool   `json:"queued,omitempty"`
}

type certificateRes struct {
	SerialNumber string    `json:"serial_number"`
	Subject      string    `json:"subject"`
	NotAfter     time.Time `json:"not_after"`
	Certificate  string    `json:"certificate"`
}

type pendingRes struct {
	UserName string `json:"user_name"`
	Class    string `json:"class"`
	Pending  bool   `json:"pending"`
}

// NewEnrollCmd returns the enroll command.
func NewEnrollCmd() *cobra.Command {
	var (
		renew     bool
		dryRun    bool
		returnCSR bool
		csrFile   string
		certOut   string
		keyOut    string
	)

	cmd := &cobra.Command{
		Use:   "enroll <user_name> <password> [identity | signing | encryption]",
		Short: "Enroll for a certificate",
		Long: `Generates an RSA key pair and a CSR for the user and submits it for signing.
With --csr the given CSR is submitted instead. The class defaults to identity.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 || len(args) > 3 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			class := certmgmt.CertClassIdentity
			if len(args) == 3 {
				c, err := certmgmt.ParseCertClass(args[2])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				class = c
			}

			var opts []certmgmt.Flag
			if renew {
				opts = append(opts, certmgmt.Renew)
			}
			if dryRun {
				opts = append(opts, certmgmt.DoNotPost)
			}
			if returnCSR || dryRun {
				opts = append(opts, certmgmt.ReturnCSR)
			}
			if csrFile != "" {
				opts = append(opts, certmgmt.UseExistingCSR)
			}
			flags, err := certmgmt.NewFlags(opts...)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			identity := certmgmt.NewIdentity(args[0], args[1])
			var req certmgmt.CSRRequest
			var key crypto.Signer
			switch csrFile {
			case "":
				req, err = csr.NewRequest(cmd.Context(), csr.NewRSAService(csr.DefaultPolicy), identity, flags)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				key = req.PrivateKey
			default:
				data, err := os.ReadFile(csrFile)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				req = certmgmt.CSRRequest{
					Version:  certmgmt.CSRRequestVersion,
					Identity: identity,
					Flags:    flags,
					CSR:      decodePEM(data, pemCSR),
				}
			}
			req.Class = class

			enrollment, sdkErr := sdk.Enroll(cmd.Context(), req)
			switch {
			case errors.Contains(sdkErr, certmgmt.ErrRequestQueued):
				logJSONCmd(*cmd, enrollmentRes{Queued: true})
				return
			case sdkErr != nil:
				logErrorCmd(*cmd, sdkErr)
				return
			}

			if key != nil && keyOut != "" {
				der, err := x509.MarshalPKCS8PrivateKey(key)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				if err := saveToFile(keyOut, []byte(encodePEM(pemPrivateKey, der)), keyFileMode); err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logSavedCmd(*cmd, keyOut)
			}
			if certOut != "" && len(enrollment.Certificate) > 0 {
				if err := saveToFile(certOut, []byte(encodePEM(pemCertificate, enrollment.Certificate)), fileMode); err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logSavedCmd(*cmd, certOut)
			}

			logJSONCmd(*cmd, enrollmentRes{
				Certificate: encodePEM(pemCertificate, enrollment.Certificate),
				CSR:         encodePEM(pemCSR, enrollment.CSR),
			})
		},
	}

	cmd.Flags().BoolVar(&renew, "renew", false, "Renew the certificate of the class")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the CSR without submitting it")
	cmd.Flags().BoolVar(&returnCSR, "return-csr", false, "Print the submitted CSR")
	cmd.Flags().StringVar(&csrFile, "csr", "", "Submit the CSR in this PEM or DER file")
	cmd.Flags().StringVar(&certOut, "cert-out", "", "Save the signed certificate to this file")
	cmd.Flags().StringVar(&keyOut, "key-out", "", "Save the generated private key to this file")

	return cmd
}

// NewLookupCmd returns the lookup command.
func NewLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <user_name> [all | identity | signing | encryption]",
		Short: "Look up certificates",
		Long:  `Retrieves the published certificates of a user. The class defaults to all.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			class, err := classArg(args, 1)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			res, sdkErr := sdk.Lookup(cmd.Context(), certmgmt.LookupRequest{UserName: args[0], Class: class})
			if sdkErr != nil {
				logErrorCmd(*cmd, sdkErr)
				return
			}

			certs, err := res.Certificates.Collect()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			out := make([]certificateRes, 0, len(certs))
			for _, c := range certs {
				out = append(out, certificateRes{
					SerialNumber: c.SerialNumber.Text(16),
					Subject:      c.Subject.String(),
					NotAfter:     c.NotAfter,
					Certificate:  encodePEM(pemCertificate, c.Raw),
				})
			}
			logJSONCmd(*cmd, out)
		},
	}
}

// NewPendingCmd returns the pending request check command.
func NewPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending <user_name> [all | identity | signing | encryption]",
		Short: "Check for a pending request",
		Long:  `Reports whether a signing request of the user awaits approval. The class defaults to all.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			class, err := classArg(args, 1)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			res, sdkErr := sdk.Lookup(cmd.Context(), certmgmt.LookupRequest{UserName: args[0], Class: class, PendingOnly: true})
			if sdkErr != nil {
				logErrorCmd(*cmd, sdkErr)
				return
			}

			logJSONCmd(*cmd, pendingRes{UserName: args[0], Class: class.String(), Pending: res.Pending})
		},
	}
}

func classArg(args []string, i int) (certmgmt.CertClass, error) {
	if len(args) <= i {
		return certmgmt.CertClassAll, nil
	}
	return certmgmt.ParseCertClass(args[i])
}
