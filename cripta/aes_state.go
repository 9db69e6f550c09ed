package cripta

// BlockSize задает размер блока AES в байтах.
const BlockSize = 16

// State описывает матрицу состояния 4x4. state[row][col] хранит байт блока со
// смещением row + 4*col.
type State [4][4]byte

// NewState строит состояние из 16 байт data, начиная с offset. Если данных
// меньше 16 байт, возвращается пустое состояние и ok == false.
func NewState(data []byte, offset int) (State, bool) {
	var state State
	if offset < 0 || len(data)-offset < BlockSize {
		return state, false
	}

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			state[row][col] = data[offset+row+4*col]
		}
	}

	return state, true
}

// Bytes разворачивает состояние обратно в блок.
func (s *State) Bytes() [BlockSize]byte {
	var out [BlockSize]byte
	s.PutBytes(out[:])
	return out
}

// PutBytes записывает состояние в первые 16 байт dst.
func (s *State) PutBytes(dst []byte) {
	_ = dst[BlockSize-1]
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			dst[row+4*col] = s[row][col]
		}
	}
}
