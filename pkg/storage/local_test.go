package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:8080/storage"}
}

func TestLocalDiskRoundTrip(t *testing.T) {
	d := testDisk(t)

	require.NoError(t, d.PutStream("payment_proofs/abc.png", strings.NewReader("png-bytes")))
	assert.True(t, d.Exists("payment_proofs/abc.png"))

	data, err := d.Get("payment_proofs/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, d.Delete("payment_proofs/abc.png"))
	assert.False(t, d.Exists("payment_proofs/abc.png"))
}

func TestLocalDiskOverwrite(t *testing.T) {
	d := testDisk(t)

	require.NoError(t, d.Put("upi_qr/seller-1.png", []byte("old")))
	require.NoError(t, d.Put("upi_qr/seller-1.png", []byte("new")))

	data, err := d.Get("upi_qr/seller-1.png")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalDiskDeleteMissingIsNoop(t *testing.T) {
	d := testDisk(t)
	assert.NoError(t, d.Delete("never/existed.png"))
}

func TestLocalDiskURL(t *testing.T) {
	d := testDisk(t)
	assert.Equal(t, "http://localhost:8080/storage/upi_qr/s1.png", d.URL("upi_qr/s1.png"))
	assert.Equal(t, "http://localhost:8080/storage/upi_qr/s1.png", d.URL("/upi_qr/s1.png"))
}
