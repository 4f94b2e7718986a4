// Package security provides TLS configuration types for outbound connections
package security

// ClientMTLSConfig holds the client certificate presented to servers that require mTLS
type ClientMTLSConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	CertFile string `json:"cert_file,omitempty" yaml:"cert_file,omitempty"`
	KeyFile  string `json:"key_file,omitempty" yaml:"key_file,omitempty"`
}

// ClientTLSConfig holds TLS configuration for remote @context fetches.
// The system CA bundle is always trusted; CAFiles are additional trusted CAs.
type ClientTLSConfig struct {
	CAFiles            []string `json:"ca_files,omitempty" yaml:"ca_files,omitempty"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"` // DEV/TEST ONLY
	MinVersion         string   `json:"min_version,omitempty" yaml:"min_version,omitempty"`                   // "1.2" or "1.3"

	MTLS ClientMTLSConfig `json:"mtls,omitempty" yaml:"mtls,omitempty"`
}

// IsZero reports whether no client TLS setting was configured.
func (c ClientTLSConfig) IsZero() bool {
	return len(c.CAFiles) == 0 && !c.InsecureSkipVerify && c.MinVersion == "" && !c.MTLS.Enabled
}
