package mqtt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/iss-flyover/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitialize_MissingCA tests that an unreadable CA certificate is reported.
func TestInitialize_MissingCA(t *testing.T) {
	s := NewMqttService(file.NewFileService())

	err := s.Initialize("ssl://localhost:8883", "test-client", filepath.Join(t.TempDir(), "ca.pem"))

	assert.ErrorContains(t, err, "failed to read CA certificate")
}

// TestInitialize_InvalidCA tests that a file without PEM certificates is rejected.
func TestInitialize_InvalidCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0600))
	s := NewMqttService(file.NewFileService())

	err := s.Initialize("ssl://localhost:8883", "test-client", path)

	assert.EqualError(t, err, "failed to append CA certificate")
}

// TestInitialize_Unreachable tests that a refused connection is returned.
func TestInitialize_Unreachable(t *testing.T) {
	s := NewMqttService(file.NewFileService())

	err := s.Initialize("tcp://127.0.0.1:1", "test-client", "")

	assert.Error(t, err)
}
