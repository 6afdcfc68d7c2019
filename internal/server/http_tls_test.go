package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/config"
)

// selfSignedPEM returns a throwaway CA-capable certificate and its key
func selfSignedPEM(t *testing.T) (certPEM, keyPEM string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "localhost"},
		DNSNames:              []string{"localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM = string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	keyPEM = string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}))
	return certPEM, keyPEM
}

func TestBuildTLSConfig(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t)

	dir := t.TempDir()
	certFile := filepath.Join(dir, "server.crt")
	keyFile := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certFile, []byte(certPEM), 0o600))
	require.NoError(t, os.WriteFile(keyFile, []byte(keyPEM), 0o600))

	tests := []struct {
		name           string
		cfg            config.TLSConfig
		wantErr        bool
		wantMinVersion uint16
		wantClientAuth tls.ClientAuthType
	}{
		{
			name:           "server mode from content",
			cfg:            config.TLSConfig{Mode: "server", CertContent: certPEM, KeyContent: keyPEM},
			wantMinVersion: tls.VersionTLS12,
			wantClientAuth: tls.NoClientCert,
		},
		{
			name:           "server mode from files with tls 1.3",
			cfg:            config.TLSConfig{Mode: "server", CertFile: certFile, KeyFile: keyFile, MinVersion: "1.3"},
			wantMinVersion: tls.VersionTLS13,
			wantClientAuth: tls.NoClientCert,
		},
		{
			name: "content wins over broken files",
			cfg: config.TLSConfig{Mode: "server", CertContent: certPEM, KeyContent: keyPEM,
				CertFile: "/does/not/exist", KeyFile: "/does/not/exist"},
			wantMinVersion: tls.VersionTLS12,
			wantClientAuth: tls.NoClientCert,
		},
		{
			name:           "mutual mode requires client certs by default",
			cfg:            config.TLSConfig{Mode: "mutual", CertContent: certPEM, KeyContent: keyPEM, CAContent: certPEM},
			wantMinVersion: tls.VersionTLS12,
			wantClientAuth: tls.RequireAndVerifyClientCert,
		},
		{
			name: "mutual mode verify policy with ca file",
			cfg: config.TLSConfig{Mode: "mutual", CertContent: certPEM, KeyContent: keyPEM,
				CAFile: certFile, ClientAuthPolicy: "verify"},
			wantMinVersion: tls.VersionTLS12,
			wantClientAuth: tls.VerifyClientCertIfGiven,
		},
		{
			name:    "missing certificate",
			cfg:     config.TLSConfig{Mode: "server"},
			wantErr: true,
		},
		{
			name:    "mutual mode without ca",
			cfg:     config.TLSConfig{Mode: "mutual", CertContent: certPEM, KeyContent: keyPEM},
			wantErr: true,
		},
		{
			name:    "garbage ca",
			cfg:     config.TLSConfig{Mode: "mutual", CertContent: certPEM, KeyContent: keyPEM, CAContent: "not a pem"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tlsConfig, err := buildTLSConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tlsConfig.Certificates, 1)
			assert.Equal(t, tt.wantMinVersion, tlsConfig.MinVersion)
			assert.Equal(t, tt.wantClientAuth, tlsConfig.ClientAuth)
			if tt.cfg.Mode == "mutual" {
				assert.NotNil(t, tlsConfig.ClientCAs)
			}
		})
	}
}

func TestConfigureTLS(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t)

	tests := []struct {
		name    string
		mode    string
		wantTLS bool
		wantErr bool
	}{
		{"disabled", "disabled", false, false},
		{"empty is disabled", "", false, false},
		{"server", "server", true, false},
		{"unknown mode", "sometimes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{TLSConfig: config.TLSConfig{Mode: tt.mode, CertContent: certPEM, KeyContent: keyPEM}}
			httpServer := &http.Server{Addr: "127.0.0.1:0"}

			err := s.configureTLS(httpServer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTLS, httpServer.TLSConfig != nil)
		})
	}
}
