package cripta

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CipherContext шифрует сообщения целиком в режиме ECB поверх блочного
// шифра. При parallel == true блоки делятся на непрерывные диапазоны и
// обрабатываются параллельно, порядок блоков в результате сохраняется.
type CipherContext struct {
	cipher   ISymmetricCipher
	key      []uint8
	parallel bool
	workers  int
}

// NewCipherContext создает контекст и устанавливает ключ. Если workers <= 0,
// используется runtime.NumCPU().
func NewCipherContext(cipher ISymmetricCipher, key []uint8, parallel bool,
	workers int) (*CipherContext, error) {

	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}
	if cipher.GetBlockSize() != BlockSize {
		return nil, fmt.Errorf("%w: cipher block is %d bytes, want %d",
			ErrInvalidBlockSize, cipher.GetBlockSize(), BlockSize)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx := &CipherContext{
		cipher:   cipher,
		parallel: parallel,
		workers:  workers,
	}

	if err := ctx.SetKey(key); err != nil {
		return nil, fmt.Errorf("failed to set key: %w", err)
	}

	return ctx, nil
}

// SetKey меняет ключ контекста.
func (ctx *CipherContext) SetKey(newKey []uint8) error {
	key := make([]uint8, len(newKey))
	copy(key, newKey)

	if err := ctx.cipher.SetKey(key); err != nil {
		return err
	}

	ctx.key = key
	return nil
}

// Encrypt дополняет plaintext набивкой и шифрует все блоки.
func (ctx *CipherContext) Encrypt(plaintext []uint8) ([]uint8, error) {
	padded := Pad(plaintext)

	ciphertext, err := ctx.processBlocks(padded, ctx.cipher.EncryptBlock)
	if err != nil {
		return nil, fmt.Errorf("ECB encryption failed: %w", err)
	}

	return ciphertext, nil
}

// Decrypt расшифровывает все блоки и снимает набивку.
func (ctx *CipherContext) Decrypt(ciphertext []uint8) ([]uint8, error) {
	if err := checkCiphertext(ciphertext); err != nil {
		return nil, err
	}

	plaintext, err := ctx.processBlocks(ciphertext, ctx.cipher.DecryptBlock)
	if err != nil {
		return nil, fmt.Errorf("ECB decryption failed: %w", err)
	}

	return Unpad(plaintext)
}

// processBlocks применяет transform к каждому блоку src.
func (ctx *CipherContext) processBlocks(src []uint8,
	transform func([]uint8) ([]uint8, error)) ([]uint8, error) {

	numBlocks := len(src) / BlockSize
	dst := make([]uint8, len(src))

	process := func(start, end int) error {
		for i := start; i < end; i++ {
			block := src[i*BlockSize : (i+1)*BlockSize]

			out, err := transform(block)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}

			copy(dst[i*BlockSize:], out)
		}
		return nil
	}

	if !ctx.parallel || ctx.workers < 2 || numBlocks < 2 {
		if err := process(0, numBlocks); err != nil {
			return nil, err
		}
		return dst, nil
	}

	blocksPerWorker := (numBlocks + ctx.workers - 1) / ctx.workers

	log.Tracef("Processing %d blocks with %d workers, %d blocks each",
		numBlocks, ctx.workers, blocksPerWorker)

	var eg errgroup.Group
	eg.SetLimit(ctx.workers)

	for start := 0; start < numBlocks; start += blocksPerWorker {
		start := start
		end := min(start+blocksPerWorker, numBlocks)
		eg.Go(func() error {
			return process(start, end)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return dst, nil
}

// EncryptFile шифрует файл inputPath в outputPath.
func (ctx *CipherContext) EncryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	encrypted, err := ctx.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, encrypted, 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// DecryptFile расшифровывает файл inputPath в outputPath.
func (ctx *CipherContext) DecryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	decrypted, err := ctx.Decrypt(data)
	if err != nil {
		return fmt.Errorf("decryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, decrypted, 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// IsParallel сообщает, обрабатываются ли блоки параллельно.
func (ctx *CipherContext) IsParallel() bool {
	return ctx.parallel
}

// GetWorkers возвращает число параллельных обработчиков.
func (ctx *CipherContext) GetWorkers() int {
	return ctx.workers
}
