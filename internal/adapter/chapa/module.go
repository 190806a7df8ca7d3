package chapa

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gebeyahq/marketadmin/internal/config"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ChapaBaseURL, p.Config.ChapaAPIKey, p.Config.GatewayTimeout, p.Logger)
}
