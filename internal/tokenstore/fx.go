package tokenstore

import (
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		NewFileStore,
		fx.As(new(Store)),
	),
)
