package logger

import (
	"carepulse-service/internal/app/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	var logLevel zapcore.Level
	switch driverConfig.Logger.Level {
	case "debug":
		logLevel = zap.DebugLevel
	case "info":
		logLevel = zap.InfoLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	level := zap.NewAtomicLevelAt(logLevel)

	var core zapcore.Core
	switch internalConfig.App.Env {
	case "production":
		output := zapcore.AddSync(newRotatingFile(driverConfig.Logger, driverConfig.Logger.OutputFileName))
		errorOutput := zapcore.NewMultiWriteSyncer(
			zapcore.Lock(os.Stderr),
			zapcore.AddSync(newRotatingFile(driverConfig.Logger, driverConfig.Logger.OutputErrorFileName)),
		)
		core = zapcore.NewTee(
			zapcore.NewCore(encoder, output, level),
			zapcore.NewCore(encoder, errorOutput, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
				return l >= zapcore.ErrorLevel && level.Enabled(l)
			})),
		)
	default:
		core = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	}

	options := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if internalConfig.App.Env == "development" {
		options = append(options, zap.Development())
	}
	return zap.New(core, options...)
}

func newRotatingFile(loggerConfig config.Logger, fileName string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    loggerConfig.MaxSizeInMB,
		MaxBackups: loggerConfig.MaxBackups,
		MaxAge:     loggerConfig.MaxAgeInDays,
		Compress:   true,
	}
}
