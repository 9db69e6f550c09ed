package main

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
	"github.com/nPaBwaYT/aesecb/cripta"
)

const (
	defaultKeySize    = 128
	defaultDebugLevel = "info"
)

// config описывает параметры командной строки.
type config struct {
	Encrypt bool `short:"e" long:"encrypt" description:"Режим шифрования"`
	Decrypt bool `short:"d" long:"decrypt" description:"Режим дешифрования"`

	KeySize int    `short:"s" long:"keysize" description:"Длина ключа в битах" choice:"128" choice:"192" choice:"256"`
	Key     string `short:"k" long:"key" description:"Ключ шифрования в hex (при шифровании без ключа будет сгенерирован)"`

	Parallel bool `long:"parallel" description:"Обрабатывать блоки параллельно"`
	Workers  int  `long:"workers" description:"Число параллельных обработчиков (0 = число CPU)"`

	DebugLevel string `long:"debuglevel" description:"Уровень логирования {trace, debug, info, warn, error, critical, off}"`

	Args struct {
		Input  string `positional-arg-name:"input"`
		Output string `positional-arg-name:"output"`
	} `positional-args:"yes"`

	// keySize заполняется при проверке конфигурации.
	keySize cripta.KeySize
}

// defaultConfig возвращает конфигурацию по умолчанию.
func defaultConfig() config {
	return config{
		KeySize:    defaultKeySize,
		DebugLevel: defaultDebugLevel,
	}
}

// demoMode сообщает, что файлы не заданы и нужно выполнить демонстрацию.
func (c *config) demoMode() bool {
	return !c.Encrypt && !c.Decrypt
}

// loadConfig разбирает аргументы командной строки и проверяет их.
func loadConfig(args []string) (*config, error) {
	cfg := defaultConfig()

	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate проверяет согласованность флагов.
func (c *config) validate() error {
	if c.Encrypt && c.Decrypt {
		return errors.New("флаги -e и -d взаимоисключающие")
	}

	hasFiles := c.Args.Input != "" || c.Args.Output != ""
	switch {
	case c.demoMode() && hasFiles:
		return errors.New("для работы с файлами укажите -e или -d")

	case !c.demoMode() && (c.Args.Input == "" || c.Args.Output == ""):
		return errors.New("необходимо указать входной и выходной файлы")

	case c.Decrypt && c.Key == "":
		return errors.New("для дешифрования необходимо указать ключ (-k)")
	}

	if c.Workers < 0 {
		return fmt.Errorf("число обработчиков не может быть "+
			"отрицательным: %d", c.Workers)
	}

	if _, ok := btclog.LevelFromString(c.DebugLevel); !ok {
		return fmt.Errorf("неизвестный уровень логирования: %s",
			c.DebugLevel)
	}

	keySize, err := cripta.ParseKeySize(c.KeySize)
	if err != nil {
		return err
	}
	c.keySize = keySize

	return nil
}
