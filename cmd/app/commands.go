package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/ephemeral/cmd/app/commands"
	"github.com/allisson/ephemeral/internal/app"
	"github.com/allisson/ephemeral/internal/config"
	ephemeralUseCase "github.com/allisson/ephemeral/internal/ephemeral/usecase"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getEphemeralCommands()...)
	return cmds
}

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the postgres or mysql keystore",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.SQLDriver(), cfg.DBConnectionString)
			},
		},
	}
}

func idFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "id",
			Aliases: []string{"i"},
			Usage:   "Keypair identifier as plain text",
		},
		&cli.StringFlag{
			Name:  "id-json",
			Usage: `Keypair identifier as a JSON value (e.g. '{"feed":"@a","seq":1}')`,
		},
	}
}

func contextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "context",
			Aliases: []string{"c"},
			Usage:   "Context label as plain text (default: \"SSB Ephemeral key\")",
		},
		&cli.StringFlag{
			Name:  "context-json",
			Usage: "Context label as a JSON value",
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}

// withUseCase builds the container and hands the wired use case to fn.
func withUseCase(
	ctx context.Context,
	fn func(useCase ephemeralUseCase.EphemeralUseCase, container *app.Container) error,
) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.EphemeralUseCase()
	if err != nil {
		return err
	}
	return fn(useCase, container)
}

func getEphemeralCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-keypair",
			Usage: "Generate and store a keypair for an identifier, replacing any previous one",
			Flags: flags(idFlags(), []cli.Flag{formatFlag()}),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := commands.ParseIdentifierFlags(cmd.String("id"), cmd.String("id-json"))
				if err != nil {
					return err
				}

				return withUseCase(ctx, func(useCase ephemeralUseCase.EphemeralUseCase, container *app.Container) error {
					return commands.RunGenerateKeypair(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						id,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "box-message",
			Usage: "Encrypt a message to a recipient public key",
			Flags: flags(
				[]cli.Flag{
					&cli.StringFlag{
						Name:     "message",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "UTF-8 message to encrypt",
					},
					&cli.StringFlag{
						Name:     "public-key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Recipient public key (<base64>.curve25519)",
					},
				},
				contextFlags(),
				[]cli.Flag{formatFlag()},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts, err := commands.ParseContextFlags(cmd.String("context"), cmd.String("context-json"))
				if err != nil {
					return err
				}

				return withUseCase(ctx, func(useCase ephemeralUseCase.EphemeralUseCase, container *app.Container) error {
					return commands.RunBoxMessage(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("message"),
						cmd.String("public-key"),
						opts,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "unbox-message",
			Usage: "Decrypt a ciphertext with the keypair stored for an identifier",
			Flags: flags(
				idFlags(),
				[]cli.Flag{
					&cli.StringFlag{
						Name:     "ciphertext",
						Required: true,
						Usage:    "Ciphertext to open (<base64>.box)",
					},
				},
				contextFlags(),
				[]cli.Flag{formatFlag()},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := commands.ParseIdentifierFlags(cmd.String("id"), cmd.String("id-json"))
				if err != nil {
					return err
				}
				opts, err := commands.ParseContextFlags(cmd.String("context"), cmd.String("context-json"))
				if err != nil {
					return err
				}

				return withUseCase(ctx, func(useCase ephemeralUseCase.EphemeralUseCase, container *app.Container) error {
					return commands.RunUnboxMessage(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						id,
						cmd.String("ciphertext"),
						opts,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "delete-keypair",
			Usage: "Delete the keypair stored for an identifier",
			Flags: flags(idFlags(), []cli.Flag{formatFlag()}),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := commands.ParseIdentifierFlags(cmd.String("id"), cmd.String("id-json"))
				if err != nil {
					return err
				}

				return withUseCase(ctx, func(useCase ephemeralUseCase.EphemeralUseCase, container *app.Container) error {
					return commands.RunDeleteKeypair(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						id,
						cmd.String("format"),
					)
				})
			},
		},
	}
}
