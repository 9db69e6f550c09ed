package cripta

type IKeySchedule interface {
	ExpandKey(masterKey []uint8) ([]uint8, error)
	InvExpandKey(masterKey []uint8) ([]uint8, error)
}

type ISymmetricCipher interface {
	SetKey(key []uint8) error
	EncryptBlock(plainBlock []uint8) ([]uint8, error)
	DecryptBlock(cipherBlock []uint8) ([]uint8, error)
	GetBlockSize() int
}
