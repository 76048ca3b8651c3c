package logging

import (
	"go.uber.org/zap"
)

var Logger *zap.SugaredLogger

func init() {
	// Safe default so library use without InitLogger never nil-derefs.
	Logger = zap.NewNop().Sugar()
}

func InitLogger(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = logger.Sugar()
}
