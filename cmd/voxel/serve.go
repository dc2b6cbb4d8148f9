package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/samcharles93/voxel/internal/api"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		dir         string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a read-only inspection API over a directory of volumes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "directory holding .nrrd and .nhdr files",
				Value:       ".",
				Destination: &dir,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e := envFromContext(ctx)
			applyServeConfig(cmd, e, &addr, &dir)

			if st, err := os.Stat(dir); err != nil || !st.IsDir() {
				return cli.Exit(fmt.Sprintf("error: volumes directory %q is not readable", dir), 1)
			}

			server := api.NewServer(api.NewVolumeStore(dir, e.opts...), e.log)
			ec := echo.New()
			ec.Use(middleware.RequestLogger())
			ec.Use(middleware.Recover())
			server.Register(ec)
			e.log.Info("starting server", "address", addr, "dir", dir)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, ec)
		},
	}
}

// applyServeConfig applies config file defaults to serve command variables
// when the corresponding flag was not set.
func applyServeConfig(cmd *cli.Command, e *env, addr, dir *string) {
	if e.cfg.ServerAddress != "" && !cmd.IsSet("addr") {
		*addr = e.cfg.ServerAddress
	}
	if e.cfg.VolumesDir != "" && !cmd.IsSet("dir") {
		*dir = e.cfg.VolumesDir
	}
}
