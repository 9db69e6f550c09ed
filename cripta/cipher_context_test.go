package cripta

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var errBlockFailed = errors.New("block failed")

// failingCipher отдает ошибку на блоке failAt и копирует остальные.
type failingCipher struct {
	blockSize int
	failAt    []byte
}

func (f *failingCipher) SetKey([]uint8) error { return nil }

func (f *failingCipher) EncryptBlock(b []uint8) ([]uint8, error) {
	if bytes.Equal(b, f.failAt) {
		return nil, errBlockFailed
	}
	return bytes.Clone(b), nil
}

func (f *failingCipher) DecryptBlock(b []uint8) ([]uint8, error) {
	return f.EncryptBlock(b)
}

func (f *failingCipher) GetBlockSize() int { return f.blockSize }

func newTestContext(t require.TestingT, size KeySize, key []byte,
	parallel bool, workers int) *CipherContext {

	ctx, err := NewCipherContext(
		newTestCipher(t, size), key, parallel, workers,
	)
	require.NoError(t, err)
	return ctx
}

// TestContextMatchesCipher проверяет, что последовательная и параллельная
// обработка дают тот же результат, что и RijndaelCipher.Encrypt.
func TestContextMatchesCipher(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		size, key := drawKey(t)
		message := rapid.SliceOfN(rapid.Byte(), 0, 1000).Draw(t, "message")
		workers := rapid.IntRange(1, 9).Draw(t, "workers")

		want, err := newTestCipher(t, size).Encrypt(message, key)
		require.NoError(t, err)

		sequential := newTestContext(t, size, key, false, 0)
		parallel := newTestContext(t, size, key, true, workers)

		for _, ctx := range []*CipherContext{sequential, parallel} {
			ciphertext, err := ctx.Encrypt(message)
			require.NoError(t, err)
			require.Equal(t, want, ciphertext)

			plaintext, err := ctx.Decrypt(ciphertext)
			require.NoError(t, err)
			require.True(t, bytes.Equal(message, plaintext))
		}
	})
}

func TestContextWorkersDefault(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(t, KeySize128, make([]byte, 16), true, 0)
	require.True(t, ctx.IsParallel())
	require.Positive(t, ctx.GetWorkers())
}

func TestNewCipherContextErrors(t *testing.T) {
	t.Parallel()

	_, err := NewCipherContext(nil, nil, false, 1)
	require.Error(t, err)

	_, err = NewCipherContext(&failingCipher{blockSize: 8}, nil, false, 1)
	require.ErrorIs(t, err, ErrInvalidBlockSize)

	_, err = NewCipherContext(
		newTestCipher(t, KeySize128), make([]byte, 10), false, 1,
	)
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestContextSetKey(t *testing.T) {
	t.Parallel()

	keyA := bytes.Repeat([]byte{0x01}, 16)
	keyB := bytes.Repeat([]byte{0x02}, 16)
	ctx := newTestContext(t, KeySize128, keyA, false, 1)

	ciphertextA, err := ctx.Encrypt([]byte("message"))
	require.NoError(t, err)

	require.NoError(t, ctx.SetKey(keyB))
	ciphertextB, err := ctx.Encrypt([]byte("message"))
	require.NoError(t, err)
	require.NotEqual(t, ciphertextA, ciphertextB)

	require.ErrorIs(t, ctx.SetKey(make([]byte, 5)), ErrInvalidKeyLength)
}

// TestContextBlockError проверяет, что ошибка любого блока возвращается
// вызывающей стороне и в последовательном, и в параллельном режиме.
func TestContextBlockError(t *testing.T) {
	t.Parallel()

	failAt := bytes.Repeat([]byte{0x42}, BlockSize)
	message := append(bytes.Repeat([]byte{0x00}, 5*BlockSize), failAt...)

	for _, parallel := range []bool{false, true} {
		ctx, err := NewCipherContext(
			&failingCipher{blockSize: BlockSize, failAt: failAt},
			nil, parallel, 3,
		)
		require.NoError(t, err)

		_, err = ctx.Encrypt(message)
		require.ErrorIs(t, err, errBlockFailed)
		require.ErrorContains(t, err, "block 5")

		_, err = ctx.Decrypt(message)
		require.ErrorIs(t, err, errBlockFailed)
	}
}

func TestContextDecryptErrors(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(t, KeySize128, make([]byte, 16), true, 4)

	_, err := ctx.Decrypt(make([]byte, 20))
	require.ErrorIs(t, err, ErrInvalidCiphertextLength)

	_, err = ctx.Decrypt(nil)
	require.ErrorIs(t, err, ErrInvalidCiphertextLength)
}

// TestContextFiles шифрует и расшифровывает файлы всех трех вариантов.
func TestContextFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "text.txt")
	data := bytes.Repeat([]byte("The quick brown fox. "), 500)
	require.NoError(t, os.WriteFile(input, data, 0644))

	for _, size := range allKeySizes {
		for _, parallel := range []bool{false, true} {
			key, err := GenerateKey(size)
			require.NoError(t, err)
			require.Len(t, key, int(size))

			ctx := newTestContext(t, size, key, parallel, 4)

			encrypted := filepath.Join(dir, size.String()+".enc")
			decrypted := filepath.Join(dir, size.String()+".dec")

			require.NoError(t, ctx.EncryptFile(input, encrypted))
			require.NoError(t, ctx.DecryptFile(encrypted, decrypted))

			enc, err := os.ReadFile(encrypted)
			require.NoError(t, err)
			require.Len(t, enc, (len(data)/BlockSize+1)*BlockSize)

			dec, err := os.ReadFile(decrypted)
			require.NoError(t, err)
			require.Equal(t, data, dec)
		}
	}

	ctx := newTestContext(t, KeySize128, make([]byte, 16), false, 1)
	missing := filepath.Join(dir, "missing")
	require.Error(t, ctx.EncryptFile(missing, filepath.Join(dir, "out")))
	require.Error(t, ctx.DecryptFile(missing, filepath.Join(dir, "out")))
}

func TestGenerateKeyInvalidSize(t *testing.T) {
	t.Parallel()

	_, err := GenerateKey(KeySize(7))
	require.ErrorIs(t, err, ErrInvalidKeySize)
}
