package cripta

// Direction задает направление преобразования блока.
type Direction int

const (
	// DirectionEncrypt выполняет прямой шифр над расписанием ExpandKey.
	DirectionEncrypt Direction = iota

	// DirectionDecrypt выполняет эквивалентный обратный шифр
	// (FIPS-197, 5.3.5) над расписанием InvExpandKey.
	DirectionDecrypt

	// DirectionDecryptStraight выполняет прямолинейный обратный шифр
	// (FIPS-197, 5.3) над обычным расписанием ExpandKey.
	DirectionDecryptStraight
)

// String возвращает имя направления.
func (d Direction) String() string {
	switch d {
	case DirectionEncrypt:
		return "encrypt"
	case DirectionDecrypt:
		return "decrypt"
	case DirectionDecryptStraight:
		return "decrypt-straight"
	default:
		return "unknown"
	}
}

var (
	mixMatrix = [4][4]byte{
		{2, 3, 1, 1},
		{1, 2, 3, 1},
		{1, 1, 2, 3},
		{3, 1, 1, 2},
	}

	invMixMatrix = [4][4]byte{
		{14, 11, 13, 9},
		{9, 14, 11, 13},
		{13, 9, 14, 11},
		{11, 13, 9, 14},
	}
)

// TransformBlock прогоняет одно состояние через все раунды. Число раундов
// определяется длиной roundKeys, которая должна быть 16*(Nr+1).
func TransformBlock(state *State, roundKeys []byte, dir Direction) {
	nr := rounds(roundKeys)

	switch dir {
	case DirectionEncrypt:
		key := RoundKey(roundKeys, 0)
		AddRoundKey(state, &key)

		for round := 1; round < nr; round++ {
			key = RoundKey(roundKeys, round)
			Round(state, &key)
		}

		key = RoundKey(roundKeys, nr)
		FinalRound(state, &key)

	case DirectionDecrypt:
		key := RoundKey(roundKeys, nr)
		AddRoundKey(state, &key)

		for round := nr - 1; round > 0; round-- {
			key = RoundKey(roundKeys, round)
			EqInvRound(state, &key)
		}

		key = RoundKey(roundKeys, 0)
		InvFinalRound(state, &key)

	case DirectionDecryptStraight:
		key := RoundKey(roundKeys, nr)
		AddRoundKey(state, &key)

		for round := nr - 1; round > 0; round-- {
			key = RoundKey(roundKeys, round)
			InvRound(state, &key)
		}

		key = RoundKey(roundKeys, 0)
		InvFinalRound(state, &key)

	default:
		panic("cripta: unknown direction")
	}
}

// Round выполняет обычный раунд шифрования.
func Round(state, roundKey *State) {
	SubBytes(state)
	ShiftRows(state)
	MixColumns(state)
	AddRoundKey(state, roundKey)
}

// FinalRound выполняет последний раунд шифрования, без MixColumns.
func FinalRound(state, roundKey *State) {
	SubBytes(state)
	ShiftRows(state)
	AddRoundKey(state, roundKey)
}

// InvRound выполняет раунд прямолинейного обратного шифра.
func InvRound(state, roundKey *State) {
	InvShiftRows(state)
	InvSubBytes(state)
	AddRoundKey(state, roundKey)
	InvMixColumns(state)
}

// EqInvRound выполняет раунд эквивалентного обратного шифра. Ключ должен быть
// заранее пропущен через InvMixColumns (см. InvExpandKey).
func EqInvRound(state, roundKey *State) {
	InvSubBytes(state)
	InvShiftRows(state)
	InvMixColumns(state)
	AddRoundKey(state, roundKey)
}

// InvFinalRound выполняет последний раунд расшифрования, без InvMixColumns.
func InvFinalRound(state, roundKey *State) {
	InvShiftRows(state)
	InvSubBytes(state)
	AddRoundKey(state, roundKey)
}

// SubBytes применяет S-бокс к каждому байту состояния
func SubBytes(state *State) {
	for row := range state {
		for col := range state[row] {
			state[row][col] = sBox[state[row][col]]
		}
	}
}

// InvSubBytes применяет обратный S-бокс
func InvSubBytes(state *State) {
	for row := range state {
		for col := range state[row] {
			state[row][col] = invSBox[state[row][col]]
		}
	}
}

// ShiftRows сдвигает строку r циклически влево на r позиций.
func ShiftRows(state *State) {
	for row := 1; row < 4; row++ {
		rotateRow(&state[row], row)
	}
}

// InvShiftRows сдвигает строку r циклически вправо на r позиций.
func InvShiftRows(state *State) {
	for row := 1; row < 4; row++ {
		rotateRow(&state[row], 4-row)
	}
}

// rotateRow циклически сдвигает строку влево на shift позиций.
func rotateRow(row *[4]byte, shift int) {
	temp := *row
	for i := range row {
		row[i] = temp[(i+shift)%4]
	}
}

// MixColumns выполняет перемешивание столбцов
func MixColumns(state *State) {
	mixColumns(state, &mixMatrix)
}

// InvMixColumns выполняет обратное перемешивание столбцов
func InvMixColumns(state *State) {
	mixColumns(state, &invMixMatrix)
}

func mixColumns(state *State, matrix *[4][4]byte) {
	var temp State
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var acc byte
			for k := 0; k < 4; k++ {
				coef := matrix[row][k]
				if coef == 1 {
					acc ^= state[k][col]
				} else {
					acc ^= mulTable[coef][state[k][col]]
				}
			}
			temp[row][col] = acc
		}
	}
	*state = temp
}

// AddRoundKey добавляет раундовый ключ (XOR). Операция обратна сама себе.
func AddRoundKey(state, roundKey *State) {
	for row := range state {
		for col := range state[row] {
			state[row][col] ^= roundKey[row][col]
		}
	}
}
