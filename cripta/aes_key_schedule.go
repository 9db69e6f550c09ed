package cripta

import (
	"fmt"
)

// KeySize задает вариант шифра длиной ключа в байтах.
type KeySize int

const (
	KeySize128 KeySize = 16
	KeySize192 KeySize = 24
	KeySize256 KeySize = 32
)

// ParseKeySize переводит длину ключа в битах в вариант шифра.
func ParseKeySize(bits int) (KeySize, error) {
	size := KeySize(bits / 8)
	if bits%8 != 0 || !size.valid() {
		return 0, fmt.Errorf("%w: got %d bits", ErrInvalidKeySize, bits)
	}
	return size, nil
}

func (k KeySize) valid() bool {
	return k == KeySize128 || k == KeySize192 || k == KeySize256
}

// Nk возвращает длину ключа в 32-битных словах.
func (k KeySize) Nk() int {
	return int(k) / 4
}

// Nr возвращает количество раундов.
func (k KeySize) Nr() int {
	return k.Nk() + 6
}

// String возвращает имя варианта, например AES-128.
func (k KeySize) String() string {
	return fmt.Sprintf("AES-%d", int(k)*8)
}

// ExpandedKeySize возвращает длину расширенного ключа: Nr+1 раундовых
// ключей по 16 байт.
func (k KeySize) ExpandedKeySize() int {
	return BlockSize * (k.Nr() + 1)
}

func checkKey(key []byte, size KeySize) error {
	if !size.valid() {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, int(size))
	}
	if len(key) != int(size) {
		return fmt.Errorf("%w: %v needs %d bytes, got %d",
			ErrInvalidKeyLength, size, int(size), len(key))
	}
	return nil
}

// ExpandKey разворачивает ключ в Nr+1 раундовых ключей (FIPS-197, 5.2).
// Слово i занимает байты 4i..4i+3 результата.
func ExpandKey(key []byte, size KeySize) ([]byte, error) {
	if err := checkKey(key, size); err != nil {
		return nil, err
	}

	nk := size.Nk()
	words := size.ExpandedKeySize() / 4

	w := make([]byte, size.ExpandedKeySize())
	copy(w, key)

	var temp [4]byte
	for i := nk; i < words; i++ {
		copy(temp[:], w[4*(i-1):4*i])

		switch {
		case i%nk == 0:
			rotWord(&temp)
			subWord(&temp)
			temp[0] ^= rcon(i / nk)

		case nk > 6 && i%nk == 4:
			subWord(&temp)
		}

		for j := 0; j < 4; j++ {
			w[4*i+j] = w[4*(i-nk)+j] ^ temp[j]
		}
	}

	log.Tracef("Expanded %v key into %d round keys", size, size.Nr()+1)

	return w, nil
}

// InvExpandKey строит расписание ключей для эквивалентного обратного шифра
// (FIPS-197, 5.3.5): к раундовым ключам 1..Nr-1 применяется InvMixColumns.
// Ключи раундов 0 и Nr не меняются.
func InvExpandKey(key []byte, size KeySize) ([]byte, error) {
	w, err := ExpandKey(key, size)
	if err != nil {
		return nil, err
	}

	for round := 1; round < size.Nr(); round++ {
		state := RoundKey(w, round)
		InvMixColumns(&state)
		state.PutBytes(w[round*BlockSize:])
	}

	return w, nil
}

// RoundKey возвращает раундовый ключ с номером round в виде состояния.
func RoundKey(expanded []byte, round int) State {
	state, _ := NewState(expanded, round*BlockSize)
	return state
}

// rounds выводит Nr из длины расширенного ключа.
func rounds(expanded []byte) int {
	return len(expanded)/BlockSize - 1
}

// rotWord циклически сдвигает слово на байт влево.
func rotWord(w *[4]byte) {
	w[0], w[1], w[2], w[3] = w[1], w[2], w[3], w[0]
}

// subWord применяет S-бокс к каждому байту слова.
func subWord(w *[4]byte) {
	for i := range w {
		w[i] = sBox[w[i]]
	}
}

// rcon возвращает первый байт константы раунда Rcon(p) = [x^(p-1), 0, 0, 0].
func rcon(p int) byte {
	rc := byte(0x01)
	for i := 1; i < p; i++ {
		rc = Xtime(rc)
	}
	return rc
}

// RijndaelKeySchedule реализует расписание ключей для Rijndael/AES
type RijndaelKeySchedule struct {
	size KeySize
}

// NewRijndaelKeySchedule создает расписание ключей для варианта size.
func NewRijndaelKeySchedule(size KeySize) *RijndaelKeySchedule {
	return &RijndaelKeySchedule{size: size}
}

// ExpandKey разворачивает ключ шифрования.
func (rks *RijndaelKeySchedule) ExpandKey(masterKey []byte) ([]byte, error) {
	return ExpandKey(masterKey, rks.size)
}

// InvExpandKey разворачивает ключ для расшифрования.
func (rks *RijndaelKeySchedule) InvExpandKey(masterKey []byte) ([]byte, error) {
	return InvExpandKey(masterKey, rks.size)
}
