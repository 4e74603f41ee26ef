package impl

import (
	"context"
	"log/slog"

	deliverycontext "registryauth/internal/delivery/context"
	"registryauth/internal/usecase"
)

// accessService grants every access, publish and unpublish request.
// Package-level policy is left to the host's own configuration.
type accessService struct {
	logger *slog.Logger
}

// NewAccessService is the constructor for accessService.
func NewAccessService(logger *slog.Logger) usecase.AccessUsecase {
	return &accessService{logger: logger}
}

func (srv *accessService) AllowAccess(ctx context.Context, input *usecase.AccessInput) (bool, error) {
	return srv.allow(ctx, "access", input)
}

func (srv *accessService) AllowPublish(ctx context.Context, input *usecase.AccessInput) (bool, error) {
	return srv.allow(ctx, "publish", input)
}

func (srv *accessService) AllowUnpublish(ctx context.Context, input *usecase.AccessInput) (bool, error) {
	return srv.allow(ctx, "unpublish", input)
}

func (srv *accessService) allow(ctx context.Context, action string, input *usecase.AccessInput) (bool, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Granted",
		slog.String("action", action),
		slog.String("user", input.User.Name),
		slog.String("package", input.Package.Name),
	)

	return true, nil
}
