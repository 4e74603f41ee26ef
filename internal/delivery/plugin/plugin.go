// Package plugin exposes the auth usecases through the host registry's
// callback contract: every operation reports through a func(err, result).
package plugin

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "registryauth/internal/delivery/context"
	"registryauth/internal/domain/entity"
	"registryauth/internal/usecase"

	"go.uber.org/fx"
)

// AuthCallback receives the user's group names, or a non-nil error and nil groups.
type AuthCallback func(err error, groups []*string)

// Callback receives a yes/no answer. When err is non-nil ok is false.
type Callback func(err error, ok bool)

// Auth is the contract the host registry calls into.
type Auth interface {
	Authenticate(ctx context.Context, username, password string, cb AuthCallback)
	AddUser(ctx context.Context, username, password string, cb Callback)
	ChangePassword(ctx context.Context, username, password, newPassword string, cb Callback)
	AllowAccess(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback)
	AllowPublish(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback)
	AllowUnpublish(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback)
}

var _ Auth = (*Plugin)(nil)

// Plugin runs store-backed operations on their own goroutine and returns at once;
// the callback fires exactly once when the operation completes. The access hooks
// do no I/O and call back before returning.
type Plugin struct {
	auth     usecase.AuthUsecase
	access   usecase.AccessUsecase
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// Params holds dependencies for Plugin, injected by Fx.
type Params struct {
	fx.In

	Auth   usecase.AuthUsecase
	Access usecase.AccessUsecase
	Logger *slog.Logger
}

// New builds the plugin.
func New(params Params) *Plugin {
	return &Plugin{
		auth:   params.Auth,
		access: params.Access,
		logger: params.Logger,
	}
}

// Authenticate verifies the credentials and reports the user's groups.
func (p *Plugin) Authenticate(ctx context.Context, username, password string, cb AuthCallback) {
	p.goCall(ctx, "authenticate", username, func(ctx context.Context) {
		output, err := p.auth.Authenticate(ctx, &usecase.CredentialsInput{Username: username, Password: password})
		if err != nil {
			cb(err, nil)

			return
		}
		cb(nil, output.Groups)
	})
}

// AddUser self-registers the first user of an empty store; otherwise it only
// succeeds for credentials that already exist.
func (p *Plugin) AddUser(ctx context.Context, username, password string, cb Callback) {
	p.goCall(ctx, "adduser", username, func(ctx context.Context) {
		if err := p.auth.CreateAccount(ctx, &usecase.CredentialsInput{Username: username, Password: password}); err != nil {
			cb(err, false)

			return
		}
		cb(nil, true)
	})
}

// ChangePassword always answers (nil, false): the operation is not supported.
func (p *Plugin) ChangePassword(ctx context.Context, username, password, newPassword string, cb Callback) {
	p.goCall(ctx, "changePassword", username, func(ctx context.Context) {
		ok, err := p.auth.ChangePassword(ctx, &usecase.ChangePasswordInput{
			Username:    username,
			Password:    password,
			NewPassword: newPassword,
		})
		cb(err, ok)
	})
}

// AllowAccess answers whether user may read pkg.
func (p *Plugin) AllowAccess(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback) {
	ctx = p.scope(ctx, "allowAccess", user.Name)
	ok, err := p.access.AllowAccess(ctx, &usecase.AccessInput{User: user, Package: pkg})
	cb(err, ok)
}

// AllowPublish answers whether user may publish pkg.
func (p *Plugin) AllowPublish(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback) {
	ctx = p.scope(ctx, "allowPublish", user.Name)
	ok, err := p.access.AllowPublish(ctx, &usecase.AccessInput{User: user, Package: pkg})
	cb(err, ok)
}

// AllowUnpublish answers whether user may unpublish pkg.
func (p *Plugin) AllowUnpublish(ctx context.Context, user entity.RemoteUser, pkg entity.PackageAccess, cb Callback) {
	ctx = p.scope(ctx, "allowUnpublish", user.Name)
	ok, err := p.access.AllowUnpublish(ctx, &usecase.AccessInput{User: user, Package: pkg})
	cb(err, ok)
}

// Wait blocks until every started operation has invoked its callback.
func (p *Plugin) Wait() {
	p.inflight.Wait()
}

func (p *Plugin) goCall(ctx context.Context, operation, username string, fn func(ctx context.Context)) {
	ctx = p.scope(ctx, operation, username)

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		fn(ctx)
	}()
}

// scope tags ctx with a call ID and a logger carrying it.
func (p *Plugin) scope(ctx context.Context, operation, username string) context.Context {
	callID := deliverycontext.GetCallID(ctx)
	if callID == "" {
		callID = deliverycontext.NewCallID()
		ctx = deliverycontext.WithCallID(ctx, callID)
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, p.logger).With(
		slog.String("callID", callID),
		slog.String("operation", operation),
		slog.String("username", username),
	)

	return deliverycontext.WithLogger(ctx, logger)
}
