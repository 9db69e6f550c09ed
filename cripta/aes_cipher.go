package cripta

import (
	"fmt"
	"sync"
)

// RijndaelCipher реализует AES с блоком 128 бит в режиме ECB.
//
// Encrypt и Decrypt не хранят состояние в шифре и могут вызываться
// параллельно. Блочные методы (EncryptBlock, DecryptBlock) работают с
// ключом, заданным через SetKey.
type RijndaelCipher struct {
	keySchedule IKeySchedule
	keySize     KeySize

	mu      sync.RWMutex
	encKeys []byte
	decKeys []byte
}

// NewRijndaelCipher создает новый шифр Rijndael для заданного варианта.
func NewRijndaelCipher(keySize KeySize) (*RijndaelCipher, error) {
	if !keySize.valid() {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize,
			int(keySize))
	}

	return &RijndaelCipher{
		keySchedule: NewRijndaelKeySchedule(keySize),
		keySize:     keySize,
	}, nil
}

// Encrypt дополняет сообщение набивкой и шифрует его поблочно.
func (rc *RijndaelCipher) Encrypt(plaintext, key []byte) ([]byte, error) {
	roundKeys, err := rc.keySchedule.ExpandKey(key)
	if err != nil {
		return nil, err
	}

	padded := Pad(plaintext)
	transformBlocks(padded, padded, roundKeys, DirectionEncrypt)

	log.Debugf("Encrypted %d bytes into %d blocks with %v", len(plaintext),
		len(padded)/BlockSize, rc.keySize)

	return padded, nil
}

// Decrypt расшифровывает сообщение и снимает набивку.
func (rc *RijndaelCipher) Decrypt(ciphertext, key []byte) ([]byte, error) {
	if err := checkCiphertext(ciphertext); err != nil {
		return nil, err
	}

	roundKeys, err := rc.keySchedule.InvExpandKey(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	transformBlocks(plaintext, ciphertext, roundKeys, DirectionDecrypt)

	log.Debugf("Decrypted %d blocks with %v", len(ciphertext)/BlockSize,
		rc.keySize)

	return Unpad(plaintext)
}

func checkCiphertext(ciphertext []byte) error {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a non-zero multiple of %d",
			ErrInvalidCiphertextLength, len(ciphertext), BlockSize)
	}
	return nil
}

// SetKey устанавливает ключ для блочных методов.
func (rc *RijndaelCipher) SetKey(key []byte) error {
	encKeys, err := rc.keySchedule.ExpandKey(key)
	if err != nil {
		return fmt.Errorf("failed to generate round keys: %w", err)
	}
	decKeys, err := rc.keySchedule.InvExpandKey(key)
	if err != nil {
		return fmt.Errorf("failed to generate round keys: %w", err)
	}

	rc.mu.Lock()
	rc.encKeys, rc.decKeys = encKeys, decKeys
	rc.mu.Unlock()

	return nil
}

// EncryptBlock шифрует один блок данных
func (rc *RijndaelCipher) EncryptBlock(plainBlock []byte) ([]byte, error) {
	return rc.transformBlock(plainBlock, DirectionEncrypt)
}

// DecryptBlock расшифровывает один блок данных
func (rc *RijndaelCipher) DecryptBlock(cipherBlock []byte) ([]byte, error) {
	return rc.transformBlock(cipherBlock, DirectionDecrypt)
}

func (rc *RijndaelCipher) transformBlock(block []byte,
	dir Direction) ([]byte, error) {

	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d",
			ErrInvalidBlockSize, BlockSize, len(block))
	}

	rc.mu.RLock()
	roundKeys := rc.encKeys
	if dir == DirectionDecrypt {
		roundKeys = rc.decKeys
	}
	rc.mu.RUnlock()

	if roundKeys == nil {
		return nil, ErrKeyNotSet
	}

	out := make([]byte, BlockSize)
	transformBlocks(out, block, roundKeys, dir)

	return out, nil
}

// GetBlockSize возвращает размер блока
func (rc *RijndaelCipher) GetBlockSize() int {
	return BlockSize
}

// GetKeySize возвращает вариант шифра
func (rc *RijndaelCipher) GetKeySize() KeySize {
	return rc.keySize
}

// GetRounds возвращает количество раундов
func (rc *RijndaelCipher) GetRounds() int {
	return rc.keySize.Nr()
}
