package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
	"github.com/nPaBwaYT/aesecb/cripta"
)

/*
Демонстрация (AES-128, фиксированный ключ)
go run .

Шифрование файла AES-256 со случайным ключом
go run . -e -s 256 input.txt output.enc

Дешифрование файла
go run . -d -s 256 -k <hex> output.enc input.txt

Параллельная обработка блоков
go run . -e --parallel --workers=8 input.txt output.enc
*/

const (
	demoPlaintext = "The Advanced Encryption Standard (AES), also known by " +
		"its original name Rijndael, is a specification for the " +
		"encryption of electronic data established by the U.S. " +
		"National Institute of Standards and Technology (NIST) in 2001"

	demoKey = "Bdi6L0oAx0UpaKlk"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Println(e.Message)
			os.Exit(0)
		}

		_, _ = fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	setupLogging(cfg.DebugLevel, os.Stdout)

	if err := run(cfg, os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

// setupLogging направляет логи пакета cripta в w.
func setupLogging(debugLevel string, w io.Writer) {
	level, _ := btclog.LevelFromString(debugLevel)
	if level == btclog.LevelOff {
		cripta.DisableLog()
		return
	}

	logger := btclog.NewSLogger(btclog.NewDefaultHandler(w))
	logger.SetLevel(level)

	cripta.UseLogger(logger.WithPrefix(cripta.Subsystem))
}

// run выполняет демонстрацию или операцию над файлами.
func run(cfg *config, out io.Writer) error {
	if cfg.demoMode() {
		return runDemo(out)
	}

	key, err := getOrGenerateKey(cfg)
	if err != nil {
		return fmt.Errorf("ошибка работы с ключом: %w", err)
	}

	cipher, err := cripta.NewRijndaelCipher(cfg.keySize)
	if err != nil {
		return fmt.Errorf("ошибка создания шифра: %w", err)
	}

	ctx, err := cripta.NewCipherContext(cipher, key, cfg.Parallel, cfg.Workers)
	if err != nil {
		return fmt.Errorf("ошибка создания контекста шифрования: %w", err)
	}

	startTime := time.Now()

	input, output := cfg.Args.Input, cfg.Args.Output
	if cfg.Encrypt {
		if err := ctx.EncryptFile(input, output); err != nil {
			return err
		}
		fmt.Fprintf(out, "Файл успешно зашифрован: %s -> %s\n", input, output)
	} else {
		if err := ctx.DecryptFile(input, output); err != nil {
			return err
		}
		fmt.Fprintf(out, "Файл успешно дешифрован: %s -> %s\n", input, output)
	}

	fmt.Fprintf(out, "\nИнформация:\n")
	fmt.Fprintf(out, "  Алгоритм: %v\n", cfg.keySize)
	fmt.Fprintf(out, "  Параллельная обработка: %v (%d)\n",
		ctx.IsParallel(), ctx.GetWorkers())
	fmt.Fprintf(out, "  Время выполнения: %v\n", time.Since(startTime))
	fmt.Fprintf(out, "  Ключ: %x\n", key)

	return nil
}

// runDemo шифрует и расшифровывает демонстрационный текст.
func runDemo(out io.Writer) error {
	cipher, err := cripta.NewRijndaelCipher(cripta.KeySize128)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Original text:\n%s\n", demoPlaintext)

	ciphertext, err := cipher.Encrypt([]byte(demoPlaintext), []byte(demoKey))
	if err != nil {
		return fmt.Errorf("ошибка шифрования: %w", err)
	}
	fmt.Fprintf(out, "Encrypted text:\n%s\n", hex.EncodeToString(ciphertext))

	plaintext, err := cipher.Decrypt(ciphertext, []byte(demoKey))
	if err != nil {
		return fmt.Errorf("ошибка дешифрования: %w", err)
	}
	fmt.Fprintf(out, "Decrypted text:\n%s\n", plaintext)

	return nil
}

// getOrGenerateKey возвращает ключ из флага или генерирует новый
func getOrGenerateKey(cfg *config) ([]byte, error) {
	if cfg.Key == "" {
		return cripta.GenerateKey(cfg.keySize)
	}

	return parseHexString(cfg.Key, int(cfg.keySize))
}

// parseHexString парсит hex строку в байты
func parseHexString(hexStr string, expectedLength int) ([]byte, error) {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("неверный hex формат: %w", err)
	}

	if len(data) != expectedLength {
		return nil, fmt.Errorf("%w: ожидается %d байт, получено %d",
			cripta.ErrInvalidKeyLength, expectedLength, len(data))
	}

	return data, nil
}
