package logger

import "go.uber.org/zap"

// New создаёт sugared-логгер приложения.
func New() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewNop возвращает логгер-заглушку для тестов.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
