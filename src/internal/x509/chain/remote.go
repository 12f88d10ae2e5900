// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNoPeerCertificates is returned when a TLS server presents no certificate.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// FetchRemoteChain connects to address ("host:port") and returns the chain
// the server presents during the handshake, leaf first. The handshake does
// not verify anything; the presented certificates are untrusted input.
//
// serverName overrides the SNI sent to the server; when empty the host part
// of address is used.
func FetchRemoteChain(ctx context.Context, address, serverName string, timeout time.Duration, version string) (*Chain, error) {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("x509chain: invalid address %q: %w", address, err)
	}
	if serverName == "" {
		serverName = host
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName: serverName,
			// We just want the cert chain, not to verify
			InsecureSkipVerify: true,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoPeerCertificates
	}

	chain := New(peerCerts[0], version)
	chain.Certs = append(chain.Certs, peerCerts[1:]...)
	return chain, nil
}
