package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/xeptore/yamusic/cache"
	"github.com/xeptore/yamusic/config"
	"github.com/xeptore/yamusic/constants"
	"github.com/xeptore/yamusic/log"
	"github.com/xeptore/yamusic/report"
	"github.com/xeptore/yamusic/token"
	"github.com/xeptore/yamusic/urlutil"
	"github.com/xeptore/yamusic/yandex"
	"github.com/xeptore/yamusic/yandex/downloader"
	"github.com/xeptore/yamusic/yandex/types"
)

func main() {
	logger := log.NewDefault()

	//nolint:exhaustruct
	app := &cli.Command{
		Name:    "yamusic",
		Version: constants.Version,
		Metadata: map[string]any{
			"compiled_at": constants.CompileTime,
		},
		Suggest:                    true,
		Usage:                      "Yandex Music Downloader",
		EnableShellCompletion:      true,
		ShellCompletionCommandName: "shell-completion",
		AllowExtFlags:              false,
		Commands: []*cli.Command{
			//nolint:exhaustruct
			{
				Name:      "download",
				Usage:     "Download albums, album tracks, and playlists by URL",
				ArgsUsage: "<urls or .txt list files...>",
				Flags: []cli.Flag{
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Config file path",
						Required: false,
					},
				},
				Action: download,
			},
			//nolint:exhaustruct
			{
				Name:  "token",
				Usage: "Extract the OAuth token from the Yandex Music desktop app",
				Flags: []cli.Flag{
					//nolint:exhaustruct
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: extractToken,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			os.Exit(1)
		}

		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}

		logger.Error().Err(err).Msg("Application exited with error")
		os.Exit(10)
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}

func download(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewDefault()

	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env file: %v", err)
		}
		logger.Debug().Msg(".env file was not found")
	} else {
		logger.Debug().Msg(".env file was loaded")
	}

	conf, err := config.Load(cmd.String("config"))
	if nil != err {
		return fmt.Errorf("load config: %v", err)
	}

	logger = log.FromConfig(conf.Log.Level, conf.Log.Format)

	logger.Debug().Dict("config", conf.ToDict()).Msg("Config loaded")

	if cmd.Args().Len() == 0 {
		return errors.New("at least one URL or .txt list file is required")
	}

	urls, err := urlutil.Process(cmd.Args().Slice())
	if nil != err {
		return fmt.Errorf("process URL list: %v", err)
	}
	if len(urls) == 0 {
		return errors.New("no URLs left after deduplication")
	}

	client := yandex.NewClient(conf.Token)
	if hasPlus, err := client.HasPlus(ctx); nil != err {
		return fmt.Errorf("check account subscription: %w", err)
	} else if !hasPlus {
		return yandex.ErrPlusRequired
	}

	if err := os.MkdirAll(conf.OutDir, 0o755); nil != err {
		return fmt.Errorf("create output directory: %v", err)
	}

	d, err := downloader.New(client, conf, cache.New())
	if nil != err {
		return fmt.Errorf("create downloader: %v", err)
	}

	var all []downloader.TrackResult
	for i, u := range urls {
		logger.Info().Int("url_num", i+1).Int("url_total", len(urls)).Str("url", u).Msg("Processing URL")

		link, ok := types.ParseLink(u)
		if !ok {
			logger.Error().Str("url", u).Msg("Unrecognized URL, skipping")
			continue
		}

		results, err := d.Download(ctx, logger, link)
		all = append(all, results...)
		if nil != err {
			if errors.Is(err, context.Canceled) {
				return context.Canceled
			}
			if errors.Is(err, yandex.ErrUnauthorized) {
				return yandex.ErrUnauthorized
			}

			logger.Error().Err(err).Str("url", u).Msg("Failed to process URL")
		}
	}

	report.Render(os.Stdout, all)

	return nil
}

func extractToken(_ context.Context, cmd *cli.Command) error {
	logger := log.NewDefault()

	dbPath, err := token.DefaultDBPath()
	if nil != err {
		return fmt.Errorf("locate desktop app local storage: %v", err)
	}

	if !cmd.Bool("yes") {
		var proceed bool
		prompt := &survey.Confirm{ //nolint:exhaustruct
			Message: fmt.Sprintf("Read the token from %s? Close the Yandex Music app first.", dbPath),
			Default: true,
		}
		if err := survey.AskOne(prompt, &proceed); nil != err {
			if errors.Is(err, terminal.InterruptErr) {
				return context.Canceled
			}

			return fmt.Errorf("ask for confirmation: %v", err)
		}
		if !proceed {
			logger.Info().Msg("Aborted")
			return nil
		}
	}

	t, err := token.Extract(dbPath)
	if nil != err {
		return fmt.Errorf("extract token: %w", err)
	}

	fmt.Println(t)

	return nil
}
