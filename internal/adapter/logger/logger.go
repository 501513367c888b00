package logger

import "go.uber.org/zap"

// LoggerAdapter implements ports.LoggerPort over zap.
type LoggerAdapter struct {
	logger *zap.Logger
}

func NewLoggerAdapter(env string) *LoggerAdapter {
	var l *zap.Logger
	var err error
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		l = zap.NewNop()
	}
	return &LoggerAdapter{logger: l}
}

func (a *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, toZapFields(fields)...)
}

func (a *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, toZapFields(fields)...)
}

func (a *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, toZapFields(fields)...)
}

func (a *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, toZapFields(fields)...)
}

func (a *LoggerAdapter) Sync() error {
	return a.logger.Sync()
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}
