package cripta

import (
	"fmt"
	"math/bits"
)

// AESModulus задает неприводимый многочлен AES x^8+x^4+x^3+x+1 (0x11B) без
// старшего бита x^8.
const AESModulus byte = 0x1B

// affineConstant задает константу аффинного преобразования S-бокса.
const affineConstant byte = 0x63

var (
	// sBox и invSBox строятся один раз при старте процесса и больше не
	// изменяются.
	sBox    [256]byte
	invSBox [256]byte

	// mulTable[k][b] = k*b в GF(2^8). Нужны строки 2, 3 (MixColumns) и
	// 9, 11, 13, 14 (InvMixColumns).
	mulTable [15][256]byte
)

func init() {
	gf := NewGF28Service()

	for i := 0; i < 256; i++ {
		var inv byte
		if i != 0 {
			inv, _ = gf.Inverse(byte(i), AESModulus)
		}
		sBox[i] = affineTransform(inv)
	}
	for i := 0; i < 256; i++ {
		invSBox[sBox[i]] = byte(i)
	}

	for k := 0; k < len(mulTable); k++ {
		for b := 0; b < 256; b++ {
			mulTable[k][b] = gf.MultiplySimple(byte(k), byte(b))
		}
	}
}

// affineTransform выполняет аффинное преобразование для S-бокса.
func affineTransform(b byte) byte {
	return b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ affineConstant
}

// SBox возвращает образ байта под S-боксом.
func SBox(b byte) byte {
	return sBox[b]
}

// InvSBox возвращает прообраз байта под S-боксом.
func InvSBox(b byte) byte {
	return invSBox[b]
}

// Xtime умножает байт на x (т.е. на 2) по модулю 0x11B.
func Xtime(b byte) byte {
	if b&0x80 != 0 {
		return b<<1 ^ AESModulus
	}
	return b << 1
}

// GF28Service предоставляет функционал для работы с полем GF(2⁸)
type GF28Service struct{}

// NewGF28Service создает новый сервис для работы с GF(2⁸)
func NewGF28Service() *GF28Service {
	return &GF28Service{}
}

// Add складывает два элемента из GF(2⁸) (побитовое XOR)
func (s *GF28Service) Add(a, b byte) byte {
	return a ^ b
}

// Multiply умножает два элемента из GF(2⁸) по заданному модулю. Модуль
// передается без старшего бита и должен быть неприводимым.
func (s *GF28Service) Multiply(a, b byte, modulus byte) (byte, error) {
	if !s.IsIrreducible(modulus) {
		return 0, fmt.Errorf("modulus 0x1%02x is reducible", modulus)
	}

	return multiply(a, b, modulus), nil
}

// MultiplySimple умножает по стандартному модулю AES.
func (s *GF28Service) MultiplySimple(a, b byte) byte {
	return multiply(a, b, AESModulus)
}

func multiply(a, b, modulus byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			result ^= a
		}

		carry := a&0x80 != 0
		a <<= 1
		if carry {
			a ^= modulus
		}

		b >>= 1
	}

	return result
}

// Inverse находит обратный элемент для элемента из GF(2⁸) по заданному модулю
func (s *GF28Service) Inverse(a byte, modulus byte) (byte, error) {
	if a == 0 {
		return 0, ErrZeroInverse
	}
	if !s.IsIrreducible(modulus) {
		return 0, fmt.Errorf("modulus 0x1%02x is reducible", modulus)
	}

	// a^254 = a^-1, так как мультипликативная группа имеет порядок 255.
	result := byte(1)
	base := a
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			result = multiply(result, base, modulus)
		}
		base = multiply(base, base, modulus)
	}

	return result, nil
}

// IsIrreducible проверяет неприводимость многочлена x^8 + modulus над GF(2).
// Приводимый многочлен степени 8 обязательно имеет делитель степени 1..4.
func (s *GF28Service) IsIrreducible(modulus byte) bool {
	poly := uint16(modulus) | 0x100
	for div := uint16(2); div < 0x20; div++ {
		if polyMod(poly, div) == 0 {
			return false
		}
	}

	return true
}

// polyMod возвращает остаток от деления многочленов над GF(2).
func polyMod(a, b uint16) uint16 {
	db := bits.Len16(b)
	for {
		da := bits.Len16(a)
		if da < db {
			return a
		}
		a ^= b << (da - db)
	}
}
