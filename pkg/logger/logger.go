package logger

import (
	"go.uber.org/zap"

	"auth-api/pkg/config"
)

func NewLogger(environment string) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)

	if environment == config.EnvironmentProduction {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
