package cripta

import "errors"

var (
	// ErrInvalidKeyLength возвращается, если длина ключа не совпадает с
	// выбранным вариантом шифра (16, 24 или 32 байта).
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidCiphertextLength возвращается для пустого шифртекста или
	// шифртекста, длина которого не кратна размеру блока.
	ErrInvalidCiphertextLength = errors.New("invalid ciphertext length")

	// ErrCorruptPadding возвращается, если последний байт расшифрованного
	// сообщения не является корректной длиной набивки.
	ErrCorruptPadding = errors.New("corrupt padding")

	// ErrInvalidBlockSize возвращается блочными методами, когда на вход
	// пришел блок не из 16 байт.
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrInvalidKeySize возвращается для неподдерживаемого варианта шифра.
	ErrInvalidKeySize = errors.New("key size must be 128, 192 or 256 bits")

	// ErrKeyNotSet возвращается блочными методами до вызова SetKey.
	ErrKeyNotSet = errors.New("key not set, call SetKey first")

	// ErrZeroInverse возвращается при попытке обратить ноль в GF(2^8).
	ErrZeroInverse = errors.New("zero element has no inverse")
)
