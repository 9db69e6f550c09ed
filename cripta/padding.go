package cripta

import (
	"fmt"
)

// Pad возвращает новый буфер с набивкой до длины, кратной BlockSize. Каждый
// байт набивки равен ее длине. Если длина уже кратна блоку, добавляется
// целый блок набивки.
func Pad(data []byte) []byte {
	paddingLength := BlockSize - len(data)%BlockSize

	padded := make([]byte, len(data)+paddingLength)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(paddingLength)
	}

	return padded
}

// Unpad снимает набивку, добавленную Pad. Возвращаемый срез разделяет
// память с data.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrCorruptPadding)
	}

	paddingLength := int(data[len(data)-1])
	if paddingLength == 0 || paddingLength > BlockSize ||
		paddingLength > len(data) {

		return nil, fmt.Errorf("%w: pad count %d for %d bytes",
			ErrCorruptPadding, paddingLength, len(data))
	}

	for i := len(data) - paddingLength; i < len(data); i++ {
		if data[i] != byte(paddingLength) {
			return nil, fmt.Errorf("%w: byte %d is 0x%02x, want 0x%02x",
				ErrCorruptPadding, i, data[i], paddingLength)
		}
	}

	return data[:len(data)-paddingLength], nil
}

// transformBlocks обрабатывает src блоками по 16 байт независимо друг от
// друга (ECB) и пишет результат в dst. len(src) должна быть кратна
// BlockSize, len(dst) >= len(src).
func transformBlocks(dst, src, roundKeys []byte, dir Direction) {
	for offset := 0; offset < len(src); offset += BlockSize {
		state, _ := NewState(src, offset)
		TransformBlock(&state, roundKeys, dir)
		state.PutBytes(dst[offset:])
	}
}
