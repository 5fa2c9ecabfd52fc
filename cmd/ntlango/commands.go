package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrewwphillips/ntlango"
	"github.com/andrewwphillips/ntlango/internal/config"
	"github.com/andrewwphillips/ntlango/internal/logging"
	"github.com/andrewwphillips/ntlango/internal/seed"
)

// cli holds what the subcommands share, set up before any of them runs
type cli struct {
	v   *viper.Viper
	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}
	root := &cobra.Command{
		Use:           "ntlango",
		Short:         "Social events GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			cfg, err := config.Load(c.v)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(c.log)
			return nil
		},
	}
	config.SetupFlags(root.PersistentFlags())

	root.AddCommand(c.serveCmd(), c.seedCmd(), c.schemaCmd())
	return root
}

// open connects to MongoDB and builds the App
func (c *cli) open(ctx context.Context) (*ntlango.App, error) {
	app, err := ntlango.New(ctx, c.cfg, ntlango.Logger(c.log))
	if err != nil {
		return nil, err
	}
	c.log.InfoContext(ctx, "connected to MongoDB", "database", c.cfg.Database)
	return app, nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(context.Background()); err != nil {
					c.log.Warn("disconnecting from MongoDB", "error", err)
				}
			}()
			return app.Run(ctx)
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	var admin seed.Admin
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the standard event categories and groups, and optionally an admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var a *seed.Admin
			if admin.Email != "" {
				if admin.Password == "" {
					return errors.New("--admin-password is required with --admin-email")
				}
				a = &admin
			}
			ctx := cmd.Context()
			app, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			r, err := app.Seed(ctx, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d categories, %d groups, %d users\n", r.Categories, r.Groups, r.Users)
			return nil
		},
	}
	cmd.Flags().StringVar(&admin.Email, "admin-email", "", "email of an admin user to create")
	cmd.Flags().StringVar(&admin.Username, "admin-username", "admin", "username of the admin user")
	cmd.Flags().StringVar(&admin.Password, "admin-password", "", "password of the admin user")
	return cmd
}

func (c *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdl, err := ntlango.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sdl)
			return err
		},
	}
}
