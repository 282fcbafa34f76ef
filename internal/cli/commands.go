// Package cli is the headless terminal frontend: cobra commands configured
// through flags, YTCROP_* environment variables or a config file.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/yt-cropper/internal/crop"
	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/model"
)

// EnvPrefix is the prefix of environment overrides, e.g. YTCROP_FETCHER
const EnvPrefix = "YTCROP"

// Flag and config keys
const (
	FlagConfig  = "config"
	FlagStart   = "start"
	FlagEnd     = "end"
	FlagName    = "name"
	FlagDir     = "dir"
	FlagFetcher = "fetcher"
	FlagFFmpeg  = "ffmpeg"
	FlagYtDlp   = "yt-dlp"
	FlagDebug   = "debug"
	FlagLogFile = "log-file"
	FlagPlain   = "plain"
)

// NewRootCommand builds the yt-cropper command tree
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "yt-cropper",
		Short:         "Download a YouTube video and cut a clip out of it",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(FlagConfig, "", "Config file (yaml, toml or json)")
	root.PersistentFlags().Bool(FlagDebug, false, "Enable debug logging")
	root.PersistentFlags().String(FlagLogFile, "", "Also write logs to this file (rotated)")

	root.AddCommand(newCropCommand(v))
	root.AddCommand(newVersionCommand(version))
	return root
}

func newCropCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop URL",
		Short: "Download URL and keep the [start, end] seconds as {dir}/{name}.mp4",
		Example: `  yt-cropper crop https://www.youtube.com/watch?v=dQw4w9WgXcQ --start 10 --end 20 --name clip
  YTCROP_FETCHER=binary yt-cropper crop https://youtu.be/dQw4w9WgXcQ --start 0 --end 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cmd); err != nil {
				return err
			}

			logging.Init(logging.Options{
				Debug: v.GetBool(FlagDebug),
				File:  v.GetString(FlagLogFile),
				Out:   cmd.ErrOrStderr(),
			})
			defer logging.Close()

			fetcher, err := download.NewFetcher(v.GetString(FlagFetcher), v.GetString(FlagYtDlp))
			if err != nil {
				return err
			}
			cropper, err := crop.Locate(v.GetString(FlagFFmpeg))
			if err != nil {
				return err
			}

			_, err = Execute(cmd.Context(), ExecConfig{
				Input: model.Input{
					URL:       args[0],
					Start:     v.GetString(FlagStart),
					End:       v.GetString(FlagEnd),
					Name:      v.GetString(FlagName),
					Directory: v.GetString(FlagDir),
				},
				Downloader: download.NewService(fetcher),
				Cropper:    cropper,
				Out:        cmd.OutOrStdout(),
				Plain:      v.GetBool(FlagPlain),
			})
			return err
		},
	}

	// Times stay strings so malformed values reach input validation
	cmd.Flags().String(FlagStart, "", "Clip start in whole seconds")
	cmd.Flags().String(FlagEnd, "", "Clip end in whole seconds")
	cmd.Flags().String(FlagName, model.DefaultOutputBaseName, "Output file name without extension")
	cmd.Flags().String(FlagDir, ".", "Output directory")
	cmd.Flags().String(FlagFetcher, download.BackendLibrary, "Download backend: library or binary")
	cmd.Flags().String(FlagFFmpeg, "", "Path to ffmpeg (default: search PATH)")
	cmd.Flags().String(FlagYtDlp, "", "Path to yt-dlp for the binary backend (default: search PATH)")
	cmd.Flags().Bool(FlagPlain, false, "Print one progress line per sample")
	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yt-cropper %s\n", version)
		},
	}
}

// loadConfig layers flags over YTCROP_* environment variables over the config file
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}
