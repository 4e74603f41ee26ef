package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"

	"registryauth/internal/delivery/plugin"
	"registryauth/internal/domain/entity"
	"registryauth/internal/infra/persistence/database"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type cli struct {
	in      *bufio.Reader
	out     io.Writer
	stdinFd int
}

func newCLI(in io.Reader, out io.Writer, stdinFd int) *cli {
	return &cli{in: bufio.NewReader(in), out: out, stdinFd: stdinFd}
}

func (c *cli) run(ctx context.Context, configPath, command string, args []string) error {
	switch command {
	case "migrate":
		return c.migrate(ctx, configPath)
	case "adduser":
		return c.addUser(ctx, configPath, args)
	case "login":
		return c.login(ctx, configPath, args)
	case "passwd":
		return c.passwd(ctx, configPath, args)
	case "access":
		return c.access(ctx, configPath, args)
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

func (c *cli) migrate(ctx context.Context, configPath string) error {
	var db *gorm.DB

	return withApp(ctx, fx.Options(injectInfra(configPath), fx.Populate(&db)), func() error {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "schema is up to date")

		return nil
	})
}

func (c *cli) addUser(ctx context.Context, configPath string, args []string) error {
	fs := c.flagSet("adduser")
	username := fs.String("user", "", "Username")
	if err := parseWithUser(fs, args, username); err != nil {
		return err
	}

	password, err := readSecret(c.in, c.out, c.stdinFd, "Password: ")
	if err != nil {
		return err
	}

	return c.withPlugin(ctx, configPath, func(p plugin.Auth) error {
		done := make(chan error, 1)
		p.AddUser(ctx, *username, password, func(err error, _ bool) { done <- err })
		if err := <-done; err != nil {
			return err
		}
		fmt.Fprintf(c.out, "user %s ok\n", *username)

		return nil
	})
}

func (c *cli) login(ctx context.Context, configPath string, args []string) error {
	fs := c.flagSet("login")
	username := fs.String("user", "", "Username")
	if err := parseWithUser(fs, args, username); err != nil {
		return err
	}

	password, err := readSecret(c.in, c.out, c.stdinFd, "Password: ")
	if err != nil {
		return err
	}

	return c.withPlugin(ctx, configPath, func(p plugin.Auth) error {
		type result struct {
			err    error
			groups []*string
		}
		done := make(chan result, 1)
		p.Authenticate(ctx, *username, password, func(err error, groups []*string) {
			done <- result{err: err, groups: groups}
		})

		res := <-done
		if res.err != nil {
			return res.err
		}

		fmt.Fprintf(c.out, "authenticated %s\n", *username)
		for _, name := range res.groups {
			if name == nil {
				fmt.Fprintln(c.out, "  (unnamed group)")

				continue
			}
			fmt.Fprintf(c.out, "  %s\n", *name)
		}

		return nil
	})
}

func (c *cli) passwd(ctx context.Context, configPath string, args []string) error {
	fs := c.flagSet("passwd")
	username := fs.String("user", "", "Username")
	if err := parseWithUser(fs, args, username); err != nil {
		return err
	}

	password, err := readSecret(c.in, c.out, c.stdinFd, "Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := readSecret(c.in, c.out, c.stdinFd, "New password: ")
	if err != nil {
		return err
	}

	return c.withPlugin(ctx, configPath, func(p plugin.Auth) error {
		type result struct {
			err error
			ok  bool
		}
		done := make(chan result, 1)
		p.ChangePassword(ctx, *username, password, newPassword, func(err error, ok bool) {
			done <- result{err: err, ok: ok}
		})

		res := <-done
		if res.err != nil {
			return res.err
		}
		if !res.ok {
			return errors.New("password change is not supported")
		}
		fmt.Fprintf(c.out, "password changed for %s\n", *username)

		return nil
	})
}

func (c *cli) access(ctx context.Context, configPath string, args []string) error {
	fs := c.flagSet("access")
	username := fs.String("user", "", "Username (empty for anonymous)")
	pkgName := fs.String("package", "", "Package name")
	action := fs.String("action", "access", "One of access, publish, unpublish")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pkgName == "" {
		return errors.New("-package is required")
	}

	return c.withPlugin(ctx, configPath, func(p plugin.Auth) error {
		var hook func(context.Context, entity.RemoteUser, entity.PackageAccess, plugin.Callback)
		switch *action {
		case "access":
			hook = p.AllowAccess
		case "publish":
			hook = p.AllowPublish
		case "unpublish":
			hook = p.AllowUnpublish
		default:
			return errors.Errorf("unknown action %q", *action)
		}

		var (
			allowed bool
			hookErr error
		)
		hook(ctx, entity.RemoteUser{Name: *username}, entity.PackageAccess{Name: *pkgName}, func(err error, ok bool) {
			allowed, hookErr = ok, err
		})
		if hookErr != nil {
			return hookErr
		}

		fmt.Fprintf(c.out, "%s %s: allowed=%t\n", *action, *pkgName, allowed)

		return nil
	})
}

func (c *cli) withPlugin(ctx context.Context, configPath string, fn func(plugin.Auth) error) error {
	var p plugin.Auth

	return withApp(ctx, fx.Options(appOptions(configPath), fx.Populate(&p)), func() error {
		return fn(p)
	})
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)

	return fs
}

func parseWithUser(fs *flag.FlagSet, args []string, username *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("-user is required")
	}

	return nil
}
