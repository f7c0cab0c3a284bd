// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/absmach/certmgmt"
	ctxsdk "github.com/absmach/certmgmt/sdk"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

const (
	defTLSVerification bool   = false
	defTimeout         string = "30s"
	defRawOutput       string = "false"
)

type remotes struct {
	SignURL         string `toml:"sign_url"`
	ArchiveURL      string `toml:"archive_url"`
	LookupURL       string `toml:"lookup_url"`
	TLSVerification bool   `toml:"tls_verification"`
}

type config struct {
	Remotes   remotes `toml:"remotes"`
	Timeout   string  `toml:"timeout"`
	RawOutput string  `toml:"raw_output"`
}

// Readable by all user groups but writeable by the user only.
const filePermission = 0o644

var (
	errReadFail       = errors.New("failed to read config file")
	errNoKey          = errors.New("no such key")
	errInvalidValue   = errors.New("invalid value for key")
	errWritingConfig  = errors.New("error in writing the updated config to file")
	defaultConfigPath = "./config.toml"
)

// configKeys maps each settable key to whether it lives in the remotes
// table.
var configKeys = map[string]bool{
	"sign_url":         true,
	"archive_url":      true,
	"lookup_url":       true,
	"tls_verification": true,
	"timeout":          false,
	"raw_output":       false,
}

func defaultConfig() config {
	return config{
		Remotes: remotes{
			SignURL:         certmgmt.DefaultSignURL,
			ArchiveURL:      certmgmt.DefaultArchiveURL,
			LookupURL:       certmgmt.DefaultLookupURL,
			TLSVerification: defTLSVerification,
		},
		Timeout:   defTimeout,
		RawOutput: defRawOutput,
	}
}

func read(file string) (config, error) {
	c := config{}
	data, err := os.Open(file)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}
	defer data.Close()

	buf, err := io.ReadAll(data)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}

	if err := toml.Unmarshal(buf, &c); err != nil {
		return config{}, err
	}

	return c, nil
}

func write(file string, c config) error {
	buf, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, buf, filePermission); err != nil {
		return errors.Wrap(errWritingConfig, err)
	}

	return nil
}

// ensureConfig creates the config file with default values if it does
// not exist.
func ensureConfig() error {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	_, err := os.Stat(ConfigPath)
	switch {
	case os.IsNotExist(err):
		return write(ConfigPath, defaultConfig())
	case err != nil:
		return err
	}

	return nil
}

// ParseConfig - parses the config file.
func ParseConfig(sdkConf ctxsdk.Config) (ctxsdk.Config, error) {
	if err := ensureConfig(); err != nil {
		return sdkConf, err
	}

	config, err := read(ConfigPath)
	if err != nil {
		return sdkConf, err
	}

	if config.RawOutput != "" {
		rawOutput, err := strconv.ParseBool(config.RawOutput)
		if err != nil {
			return sdkConf, err
		}
		// check for config file value or flag input value is true
		RawOutput = rawOutput || RawOutput
	}

	if sdkConf.Timeout == 0 && config.Timeout != "" {
		timeout, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return sdkConf, err
		}
		sdkConf.Timeout = timeout
	}

	if sdkConf.SignURL == "" && config.Remotes.SignURL != "" {
		sdkConf.SignURL = config.Remotes.SignURL
	}

	if sdkConf.ArchiveURL == "" && config.Remotes.ArchiveURL != "" {
		sdkConf.ArchiveURL = config.Remotes.ArchiveURL
	}

	if sdkConf.LookupURL == "" && config.Remotes.LookupURL != "" {
		sdkConf.LookupURL = config.Remotes.LookupURL
	}

	sdkConf.TLSVerification = config.Remotes.TLSVerification || sdkConf.TLSVerification

	return sdkConf, nil
}

func setConfigValue(key, value string) error {
	remote, ok := configKeys[key]
	if !ok {
		return errNoKey
	}

	if err := ensureConfig(); err != nil {
		return err
	}

	c, err := read(ConfigPath)
	if err != nil {
		return err
	}

	var target any = &c
	if remote {
		target = &c.Remotes
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "toml",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any{key: value}); err != nil {
		return errors.Wrap(errInvalidValue, err)
	}

	if err := validateConfig(c); err != nil {
		return err
	}

	return write(ConfigPath, c)
}

func validateConfig(c config) error {
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return errors.Wrap(errInvalidValue, err)
		}
	}
	if c.RawOutput != "" {
		if _, err := strconv.ParseBool(c.RawOutput); err != nil {
			return errors.Wrap(errInvalidValue, err)
		}
	}

	return nil
}

// NewConfigCmd returns the config command.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <key> <value>",
		Short: "CLI local config",
		Long: `Local param storage to prevent repetitive passing of keys.
Keys: sign_url, archive_url, lookup_url, tls_verification, timeout, raw_output.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := setConfigValue(args[0], args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	}
}
