package cripta

import (
	"github.com/btcsuite/btclog/v2"
)

// Subsystem определяет код подсистемы для логирования.
const Subsystem = "AESC"

// log по умолчанию отключен, пока вызывающая сторона не передаст логгер
// через UseLogger.
var log btclog.Logger = btclog.Disabled

// DisableLog отключает весь вывод логов пакета.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger задает логгер для пакета.
func UseLogger(logger btclog.Logger) {
	log = logger
}
