package di

import (
	"go.uber.org/fx"

	"github.com/gebeyahq/marketadmin/internal/adapter/chapa"
	"github.com/gebeyahq/marketadmin/internal/app"
	"github.com/gebeyahq/marketadmin/internal/config"
	"github.com/gebeyahq/marketadmin/internal/logger"
	"github.com/gebeyahq/marketadmin/internal/pkg/auth"
	"github.com/gebeyahq/marketadmin/internal/server/http/handlers"
	"github.com/gebeyahq/marketadmin/internal/server/http/router"
	"github.com/gebeyahq/marketadmin/internal/storage/postgres"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		chapa.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.ConsoleFacade) handlers.ConsoleFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
