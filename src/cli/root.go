// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-store-context/src/config"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/posix"
	x509chain "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/chain"
	x509verify "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/verify"
	"github.com/H0llyW00dzZ/x509-store-context/src/logger"
)

var (
	// ErrInputRequired is returned when neither CERT nor --remote is given.
	ErrInputRequired = errors.New("a certificate file or --remote is required")
	// ErrVerificationFailed is returned after the report of a failed
	// verification has been printed.
	ErrVerificationFailed = errors.New("verification failed")
)

// verifyFlags holds the flags of one verify invocation.
type verifyFlags struct {
	configFile         string
	caFile             string
	caDir              string
	system             bool
	untrusted          []string
	trusted            []string
	fetchIntermediates bool
	remote             string
	purpose            string
	hostname           string
	at                 string
	format             string
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	name := posix.GetExecutableName()
	rootCmd := &cobra.Command{
		Use:           name,
		Short:         "Verify X.509 certificate chains through a store context",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newVerifyCommand(name, version, log))
	return rootCmd
}

func newVerifyCommand(name, version string, log logger.Logger) *cobra.Command {
	f := &verifyFlags{}
	cmd := &cobra.Command{
		Use:   "verify [CERT]",
		Short: "Verify a certificate against a trust store",
		Example: fmt.Sprintf(`  %[1]s verify --ca-file roots.pem --untrusted intermediate.pem leaf.pem
  %[1]s verify --system --fetch-intermediates --format tree leaf.pem
  %[1]s verify --system --remote example.com:443 --hostname example.com`, name),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, f, version, log)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configFile, "config", "c", "", "configuration file (.json, .yaml, .toml); defaults to $"+config.EnvFile)
	fl.StringVar(&f.caFile, "ca-file", "", "trusted certificates bundle (PEM, DER or PKCS7)")
	fl.StringVar(&f.caDir, "ca-dir", "", "directory of trusted certificate files")
	fl.BoolVar(&f.system, "system", false, "trust the system root certificates")
	fl.StringArrayVarP(&f.untrusted, "untrusted", "u", nil, "untrusted certificates usable to build the chain (repeatable)")
	fl.StringArrayVar(&f.trusted, "trusted", nil, "trusted certificates replacing the store (repeatable)")
	fl.BoolVar(&f.fetchIntermediates, "fetch-intermediates", false, "download missing intermediates from AIA issuer URLs")
	fl.StringVar(&f.remote, "remote", "", "verify the chain presented by host:port")
	fl.StringVar(&f.purpose, "purpose", "", "required purpose: sslserver, sslclient, codesign, any")
	fl.StringVar(&f.hostname, "hostname", "", "DNS name the certificate must be valid for")
	fl.StringVar(&f.at, "at", "", "verification time (RFC 3339) instead of now")
	fl.StringVarP(&f.format, "format", "o", "", "output format: text, tree, table, json, pem, der")

	return cmd
}

// settings merges the configuration file with explicitly set flags.
func (f *verifyFlags) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("ca-file") {
		cfg.Trust.CAFile = f.caFile
	}
	if fl.Changed("ca-dir") {
		cfg.Trust.CADir = f.caDir
	}
	if fl.Changed("system") {
		cfg.Trust.System = f.system
	}
	if fl.Changed("fetch-intermediates") {
		cfg.Network.FetchIntermediates = f.fetchIntermediates
	}
	if fl.Changed("purpose") {
		cfg.Verify.Purpose = f.purpose
	}
	if fl.Changed("hostname") {
		cfg.Verify.Hostname = f.hostname
	}
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}

	return cfg, cfg.Validate()
}

func runVerify(cmd *cobra.Command, args []string, f *verifyFlags, version string, log logger.Logger) error {
	if len(args) == 0 && f.remote == "" {
		return ErrInputRequired
	}

	cfg, err := f.settings(cmd)
	if err != nil {
		return err
	}

	opts := x509verify.Options{
		CAFile:   cfg.Trust.CAFile,
		CADir:    cfg.Trust.CADir,
		System:   cfg.Trust.System,
		Hostname: cfg.Verify.Hostname,
	}
	if opts.Purpose, err = cfg.Purpose(); err != nil {
		return err
	}
	if f.at != "" {
		if opts.At, err = time.Parse(time.RFC3339, f.at); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	ctx := cmd.Context()
	leaf, name, presented, err := target(ctx, args, f.remote, cfg, version)
	if err != nil {
		return err
	}

	if opts.Untrusted, err = x509verify.LoadCertificates(f.untrusted...); err != nil {
		return fmt.Errorf("untrusted: %w", err)
	}
	opts.Untrusted = append(opts.Untrusted, presented...)

	if len(f.trusted) > 0 {
		if opts.Trusted, err = x509verify.LoadCertificates(f.trusted...); err != nil {
			return fmt.Errorf("trusted: %w", err)
		}
	}

	if cfg.Network.FetchIntermediates {
		fetched, err := x509verify.FetchIntermediates(ctx, leaf, cfg.Timeout(), version)
		if err != nil {
			return fmt.Errorf("fetch intermediates: %w", err)
		}
		log.Printf("fetched %d intermediate certificate(s)", len(fetched))
		opts.Untrusted = append(opts.Untrusted, fetched...)
	}

	report, err := x509verify.Verify(leaf, opts)
	if err != nil {
		return err
	}

	if err := write(cmd, report, name, cfg.Output.Format); err != nil {
		return err
	}
	if !report.Verified {
		return ErrVerificationFailed
	}
	return nil
}

// target returns the certificate to verify, the name to print it under and
// the certificates a remote server presented after it.
func target(ctx context.Context, args []string, remote string, cfg *config.Config, version string) (*x509.Certificate, string, []*x509.Certificate, error) {
	if remote != "" {
		chain, err := x509chain.FetchRemoteChain(ctx, remote, cfg.Verify.Hostname, cfg.Timeout(), version)
		if err != nil {
			return nil, "", nil, err
		}
		return chain.Leaf(), remote, chain.Certs[1:], nil
	}

	leaf, err := x509verify.LoadCertificate(args[0])
	if err != nil {
		return nil, "", nil, fmt.Errorf("certificate: %w", err)
	}
	return leaf, args[0], nil, nil
}

func write(cmd *cobra.Command, report *x509chain.Report, name, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		_, err := fmt.Fprint(out, report.RenderASCIITree())
		return err
	case "table":
		_, err := fmt.Fprint(out, report.RenderTable())
		return err
	case "json":
		data, err := report.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "pem":
		_, err := out.Write(report.RenderPEM())
		return err
	case "der":
		_, err := out.Write(report.RenderDER())
		return err
	default:
		_, err := fmt.Fprint(out, report.RenderText(name))
		return err
	}
}
