package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/chatdock/internal/app"
	"github.com/five82/chatdock/internal/chatlog"
)

var errBlankMessage = errors.New("message is blank")

func newRootCmd() *cobra.Command {
	var (
		configPath string
		file       string
		poll       time.Duration
	)

	root := &cobra.Command{
		Use:           "chatdock",
		Short:         "Terminal chat panel for a live chat JSON file",
		Long:          `Shows the tail of a chat JSON file, refreshes it when the file changes, and writes outgoing messages to a fixed output file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				File:       file,
				PollEvery:  poll,
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&file, "file", "", "chat JSON file to load instead of the last session")
	root.Flags().DurationVar(&poll, "poll", 0, "refresh interval (optional, defaults to 3s)")

	root.AddCommand(newRenderCmd(), newSendCmd(&configPath), newRevealCmd(&configPath))
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		limit int
		theme string
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the highlighted chat once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Render(nil, cmd.OutOrStdout(), args[0], limit, theme)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", chatlog.DefaultLimit, "number of messages to show (3-100)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme name")
	return cmd
}

func newSendCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>",
		Short: "Write a message to the output file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sent, err := app.Send(nil, *configPath, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !sent {
				return errBlankMessage
			}
			return nil
		},
	}
}

func newRevealCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal",
		Short: "Open the output file's folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Reveal(nil, *configPath, nil)
		},
	}
}
