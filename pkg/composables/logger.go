package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tramova/tramova/pkg/configuration"
	"github.com/tramova/tramova/pkg/constants"
)

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(configuration.Use().Logger())
}
