// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-store-context verifies X.509 certificate chains through a
// verification context bound to a trust store.
//
// # Installation
//
//	go install github.com/H0llyW00dzZ/x509-store-context/cmd/x509-store-context@latest
//
// # Usage
//
//	x509-store-context verify [CERT] [FLAGS]
//
// # Flags
//
//	-c, --config               Configuration file (.json, .yaml, .yml, .toml)
//	    --ca-file              Trusted certificates bundle (PEM, DER or PKCS7)
//	    --ca-dir               Directory of trusted certificate files
//	    --system               Trust the system root certificates
//	-u, --untrusted            Untrusted intermediates (repeatable)
//	    --trusted              Trusted certificates replacing the store (repeatable)
//	    --fetch-intermediates  Download intermediates from AIA issuer URLs
//	    --remote               Verify the chain presented by host:port
//	    --purpose              sslserver, sslclient, codesign or any
//	    --hostname             DNS name the certificate must be valid for
//	    --at                   Verification time (RFC 3339)
//	-o, --format               text, tree, table or json
//
// # Exit status
//
// 0 when the chain verified, 2 when verification completed and failed, 1
// for any other error.
//
// # Examples
//
//	x509-store-context verify --ca-file roots.pem -u intermediate.pem leaf.pem
//	x509-store-context verify --system --remote example.com:443 --format tree
package main
