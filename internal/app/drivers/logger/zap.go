package logger

import (
	"log"
	"os"
	"telehealth-service/internal/app/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "telehealth-service"

// NewZapLogger writes JSON lines to stdout. Production additionally appends
// every entry to the log file and warn-and-above to the error file.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if driverConfig.Logger.Level != "" {
		if err := level.UnmarshalText([]byte(driverConfig.Logger.Level)); err != nil {
			log.Printf("Unknown logger level %q, falling back to info", driverConfig.Logger.Level)
			level.SetLevel(zap.InfoLevel)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if internalConfig.App.Env == "production" {
		cores = append(cores,
			fileCore(encoder, driverConfig.Logger.OutputFileName, level),
			fileCore(encoder, driverConfig.Logger.OutputErrorFileName, zap.WarnLevel),
		)
	}

	options := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(
			zap.String("service", serviceName),
			zap.String("env", internalConfig.App.Env),
			zap.String("version", internalConfig.App.Version),
		),
	}
	if internalConfig.App.Env == "development" {
		options = append(options, zap.Development())
	}

	return zap.New(zapcore.NewTee(cores...), options...)
}

func fileCore(encoder zapcore.Encoder, path string, enabler zapcore.LevelEnabler) zapcore.Core {
	sink, _, err := zap.Open(path)
	if err != nil {
		log.Fatalf("Error while opening log file %s: %v", path, err)
	}
	return zapcore.NewCore(encoder.Clone(), sink, enabler)
}
