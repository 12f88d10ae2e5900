// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// RenderText renders the verdict the way a command line verifier does:
// "name: OK", or the failure followed by the verify error and its depth.
// Colors are dropped when [color.NoColor] is set.
func (r *Report) RenderText(name string) string {
	if name == "" {
		name = r.Subject()
	}
	if r.Verified {
		return fmt.Sprintf("%s: %s\n", name, okColor.Sprint("OK"))
	}
	return fmt.Sprintf("%s: %s\nerror %d at %d depth lookup: %s\n",
		name, failColor.Sprint("verification failed"), r.Code, r.Depth, r.Reason)
}

// RenderASCIITree renders the chain as an ASCII tree, one certificate per
// line. A failed verification marks the certificate at the error depth.
func (r *Report) RenderASCIITree() string {
	if len(r.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range r.Certs {
		connector := "├── "
		if i == len(r.Certs)-1 {
			connector = "└── "
		}

		certInfo := fmt.Sprintf("[%s] %s", r.statusIcon(i), cert.Subject.CommonName)
		if role := r.role(i); role != "" {
			certInfo += fmt.Sprintf(" (%s)", role)
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the chain as a markdown table.
func (r *Report) RenderTable() string {
	if len(r.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Status"})

	var rows [][]string
	for i, cert := range r.Certs {
		algo, size := publicKeyInfo(cert)
		key := algo
		if size > 0 {
			key = fmt.Sprintf("%d-bit %s", size, algo)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.role(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			key,
			r.status(i),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

type certificateData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	Status             string    `json:"status"`
}

type relationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

// ReportData is the JSON form of a [Report].
type ReportData struct {
	ID            string             `json:"id"`
	Timestamp     string             `json:"timestamp"`
	Verified      bool               `json:"verified"`
	Code          int                `json:"code"`
	Reason        string             `json:"reason"`
	Depth         int                `json:"depth"`
	ChainLength   int                `json:"chainLength"`
	Certificates  []certificateData  `json:"certificates"`
	Relationships []relationshipData `json:"relationships"`
}

// ToJSON converts the report to indented JSON for external tools.
func (r *Report) ToJSON() ([]byte, error) {
	data := ReportData{
		ID:            r.ID,
		Timestamp:     r.CheckedAt.Format(time.RFC3339),
		Verified:      r.Verified,
		Code:          r.Code,
		Reason:        r.Reason,
		Depth:         r.Depth,
		ChainLength:   len(r.Certs),
		Certificates:  make([]certificateData, len(r.Certs)),
		Relationships: []relationshipData{},
	}

	for i, cert := range r.Certs {
		algo, size := publicKeyInfo(cert)
		data.Certificates[i] = certificateData{
			Index:              i,
			Role:               r.role(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            size,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			Status:             r.status(i),
		}
	}

	// Only a verified chain is known to be signed link by link.
	if r.Verified {
		for i := 0; i < len(r.Certs)-1; i++ {
			data.Relationships = append(data.Relationships, relationshipData{
				FromIndex: i,
				ToIndex:   i + 1,
				Type:      "signed_by",
			})
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

func (r *Report) statusIcon(index int) string {
	switch r.status(index) {
	case "verified":
		return "✓"
	case "failed":
		return "✗"
	default:
		return "-"
	}
}

func (r *Report) status(index int) string {
	switch {
	case r.Verified:
		return "verified"
	case index == r.Depth:
		return "failed"
	default:
		return "unchecked"
	}
}

// role determines the role of the certificate at index.
func (r *Report) role(index int) string {
	cert := r.Certs[index]
	selfSigned := isSelfSigned(cert)
	switch {
	case index == 0 && selfSigned:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity Certificate"
	case selfSigned:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

func publicKeyInfo(cert *x509.Certificate) (string, int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	}
	return "unknown", 0
}
