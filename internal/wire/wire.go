//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/sevigo/threadcall/internal/app"
	"github.com/sevigo/threadcall/internal/config"
)

func InitializeApp(v *viper.Viper) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		config.LoadConfig,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
		provideMetrics,
		provideServer,
	)
	return &app.App{}, nil, nil
}
