package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nPaBwaYT/aesecb/cripta"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runDemo(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, demoPlaintext, lines[1])
	require.Equal(t, demoPlaintext, lines[5])

	ciphertext, err := hex.DecodeString(lines[3])
	require.NoError(t, err)
	require.Zero(t, len(ciphertext)%cripta.BlockSize)
	require.Greater(t, len(ciphertext), len(demoPlaintext))
}

// TestRunFiles шифрует файл через CLI со сгенерированным ключом и
// расшифровывает его напечатанным ключом.
func TestRunFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	encrypted := filepath.Join(dir, "input.enc")
	decrypted := filepath.Join(dir, "input.dec")

	data := []byte(demoPlaintext)
	require.NoError(t, os.WriteFile(input, data, 0644))

	cfg, err := loadConfig([]string{
		"-e", "-s", "192", "--parallel", input, encrypted,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out))

	var key string
	for _, line := range strings.Split(out.String(), "\n") {
		if k, ok := strings.CutPrefix(strings.TrimSpace(line), "Ключ: "); ok {
			key = k
		}
	}
	require.Len(t, key, 48)

	cfg, err = loadConfig([]string{
		"-d", "-s", "192", "-k", key, encrypted, decrypted,
	})
	require.NoError(t, err)
	require.NoError(t, run(cfg, &out))

	got, err := os.ReadFile(decrypted)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRunBadKey(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig([]string{"-d", "-k", "0011", "a", "b"})
	require.NoError(t, err)
	require.ErrorIs(t, run(cfg, &bytes.Buffer{}), cripta.ErrInvalidKeyLength)

	cfg, err = loadConfig([]string{"-d", "-k", "zz", "a", "b"})
	require.NoError(t, err)
	require.ErrorContains(t, run(cfg, &bytes.Buffer{}), "hex")
}
