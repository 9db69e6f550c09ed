package cripta

import (
	"crypto/rand"
	"fmt"
)

// GenerateKey генерирует случайный ключ для заданного варианта.
func GenerateKey(keySize KeySize) ([]byte, error) {
	if !keySize.valid() {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize,
			int(keySize))
	}

	key := make([]byte, int(keySize))
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return key, nil
}
