package usecase

import "go.uber.org/fx"

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	fx.Annotate(NewRoleGate, fx.As(new(Gate))),
	NewIdentityUseCase,
	NewAdUseCase,
	NewOrderUseCase,
	NewAuctionUseCase,
)
