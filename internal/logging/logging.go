package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger é Nop até InitLogger ser chamado, para que testes e pacotes
// possam logar sem inicialização.
var Logger = zap.NewNop().Sugar()

// InitLogger configura Logger: development com --debug, production em
// nível Warn caso contrário. Ambos com encoding console.
func InitLogger(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("inicializar logger: %w", err)
	}
	Logger = logger.Sugar()
	return Logger, nil
}

// Sync descarrega buffers; o erro de sync em stderr é ignorado.
func Sync() {
	_ = Logger.Sync()
}
