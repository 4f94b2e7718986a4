// Package tlsutil builds crypto/tls configurations from security settings.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/security"
)

// LoadClientTLSConfig creates a tls.Config for outbound HTTP clients.
// The system CA bundle is used first; CAFiles are additional trusted CAs.
// When MTLS is enabled the client certificate is loaded as well.
func LoadClientTLSConfig(cfg security.ClientTLSConfig) (*tls.Config, error) {
	if cfg.MinVersion != "" && cfg.MinVersion != "1.2" && cfg.MinVersion != "1.3" {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "tlsutil", "LoadClientTLSConfig",
			fmt.Sprintf("unsupported TLS min_version %q", cfg.MinVersion))
	}

	tlsConfig := &tls.Config{
		MinVersion: parseTLSVersion(cfg.MinVersion),
	}

	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		rootCAs = x509.NewCertPool()
	}

	for _, caFile := range cfg.CAFiles {
		caPEM, err := os.ReadFile(caFile)
		if err != nil {
			return nil, errors.WrapFatal(err, "tlsutil", "LoadClientTLSConfig", fmt.Sprintf("read CA file %s", caFile))
		}
		if !rootCAs.AppendCertsFromPEM(caPEM) {
			return nil, errors.WrapFatal(
				fmt.Errorf("invalid PEM data"),
				"tlsutil",
				"LoadClientTLSConfig",
				fmt.Sprintf("parse CA certificate from %s", caFile),
			)
		}
	}

	tlsConfig.RootCAs = rootCAs

	if cfg.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	if cfg.MTLS.Enabled {
		clientCert, err := tls.LoadX509KeyPair(cfg.MTLS.CertFile, cfg.MTLS.KeyFile)
		if err != nil {
			return nil, errors.WrapFatal(err, "tlsutil", "LoadClientTLSConfig", "load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{clientCert}
	}

	return tlsConfig, nil
}

// parseTLSVersion converts version string to crypto/tls constant.
// Returns tls.VersionTLS12 if empty.
func parseTLSVersion(version string) uint16 {
	switch version {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
