package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/cli/config"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// engineConfig groups the flags of commands that work on both stores
type engineConfig struct {
	app    config.AppConfig
	db     config.Database
	store  config.DocumentStore
	notify config.Notify
}

func (x *engineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.app.Flags()...)
	flags = append(flags, x.db.Flags()...)
	flags = append(flags, x.store.Flags()...)
	flags = append(flags, x.notify.Flags()...)
	return flags
}

// build opens both stores and wires the use cases. The returned closer
// releases the stores.
func (x *engineConfig) build(ctx context.Context, opts ...usecase.Option) (*usecase.UseCases, func(), error) {
	codes, err := x.app.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load configuration")
	}

	repo, err := x.db.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize primary store")
	}

	store, err := x.store.Configure(ctx)
	if err != nil {
		closeWithLog(ctx, "primary store", repo.Close)
		return nil, nil, goerr.Wrap(err, "failed to initialize document store")
	}

	closer := func() {
		closeWithLog(ctx, "document store", store.Close)
		closeWithLog(ctx, "primary store", repo.Close)
	}

	notifier, err := x.notify.Configure()
	if err != nil {
		closer()
		return nil, nil, err
	}

	ucOpts := []usecase.Option{usecase.WithStatusCodes(codes)}
	if notifier != nil {
		ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
		logging.From(ctx).Info("Slack notification of failed runs enabled", "notify", x.notify)
	}
	ucOpts = append(ucOpts, opts...)

	return usecase.New(repo, store, ucOpts...), closer, nil
}

func closeWithLog(ctx context.Context, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logging.From(ctx).Error("failed to close "+name, "error", err.Error())
	}
}
