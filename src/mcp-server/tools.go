// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/x509-store-context/src/config"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
	x509chain "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/chain"
	x509verify "github.com/H0llyW00dzZ/x509-store-context/src/internal/x509/verify"
	"github.com/H0llyW00dzZ/x509-store-context/src/logger"
)

// verifyTool describes verify_certificate. Defaults mirror cfg.
func verifyTool(cfg *config.Config) mcp.Tool {
	return mcp.NewTool("verify_certificate",
		mcp.WithDescription("Verify an X.509 certificate chain against a trust store and report the verify result"),
		mcp.WithString("certificate",
			mcp.Required(),
			mcp.Description("Certificate file path or base64-encoded certificate data"),
		),
		mcp.WithString("untrusted",
			mcp.Description("Comma-separated file paths or base64 data of untrusted intermediates"),
		),
		mcp.WithString("trusted",
			mcp.Description("Comma-separated file paths or base64 data of trusted certificates replacing the configured trust store"),
		),
		mcp.WithBoolean("use_system_roots",
			mcp.Description("Trust the system root certificates"),
			mcp.DefaultBool(cfg.Trust.System),
		),
		mcp.WithBoolean("fetch_intermediates",
			mcp.Description("Download missing intermediates from AIA issuer URLs"),
			mcp.DefaultBool(cfg.Network.FetchIntermediates),
		),
		mcp.WithString("hostname",
			mcp.Description("DNS name the certificate must be valid for"),
		),
		mcp.WithString("purpose",
			mcp.Description("Required purpose: 'sslserver', 'sslclient', 'codesign' or 'any'"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'text', 'tree', 'table', 'json', 'pem' or 'der' (base64)"),
			mcp.DefaultString(cfg.Output.Format),
		),
	)
}

type verifyHandler struct {
	cfg     *config.Config
	version string
	log     logger.Logger
}

func (h *verifyHandler) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	leaf, err := x509verify.LoadCertificate(certInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
	}

	opts := x509verify.Options{
		CAFile:   h.cfg.Trust.CAFile,
		CADir:    h.cfg.Trust.CADir,
		System:   request.GetBool("use_system_roots", h.cfg.Trust.System),
		Hostname: request.GetString("hostname", h.cfg.Verify.Hostname),
	}

	purpose := request.GetString("purpose", h.cfg.Verify.Purpose)
	if opts.Purpose, err = native.ParsePurpose(purpose); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if opts.Untrusted, err = x509verify.LoadCertificates(splitList(request.GetString("untrusted", ""))...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read untrusted certificates: %v", err)), nil
	}
	if trusted := splitList(request.GetString("trusted", "")); len(trusted) > 0 {
		if opts.Trusted, err = x509verify.LoadCertificates(trusted...); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read trusted certificates: %v", err)), nil
		}
	}

	if request.GetBool("fetch_intermediates", h.cfg.Network.FetchIntermediates) {
		fetched, err := x509verify.FetchIntermediates(ctx, leaf, h.cfg.Timeout(), h.version)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch intermediates: %v", err)), nil
		}
		opts.Untrusted = append(opts.Untrusted, fetched...)
	}

	report, err := x509verify.Verify(leaf, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("verification could not run: %v", err)), nil
	}
	h.log.Printf("verify %s: code %d (%s)", report.Subject(), report.Code, report.Reason)

	out, err := render(report, request.GetString("format", h.cfg.Output.Format))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func render(report *x509chain.Report, format string) (string, error) {
	switch format {
	case "tree":
		return report.RenderText("") + "\n" + report.RenderASCIITree(), nil
	case "table":
		return report.RenderText("") + "\n" + report.RenderTable(), nil
	case "json":
		data, err := report.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data), nil
	case "pem":
		return string(report.RenderPEM()), nil
	case "der":
		return base64.StdEncoding.EncodeToString(report.RenderDER()), nil
	case "text", "":
		return report.RenderText(""), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// splitList splits a comma-separated argument, dropping empty items.
func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
