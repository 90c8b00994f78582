// Package main is an entrypoint for application
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/Semior001/politicalfeed/app/cmd"
	"github.com/Semior001/politicalfeed/pkg/logx"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

var opts struct {
	Run      cmd.Run      `command:"run" description:"run political news bot"`
	Feed     cmd.Feed     `command:"feed" description:"load featured and latest articles"`
	Status   cmd.Status   `command:"status" description:"show backend and session status"`
	Login    cmd.Login    `command:"login" description:"sign in and save the session"`
	Logout   cmd.Logout   `command:"logout" description:"clear the saved session"`
	Article  cmd.Article  `command:"article" description:"show the article"`
	Publish  cmd.Publish  `command:"publish" description:"publish a new article"`
	Edit     cmd.Edit     `command:"edit" description:"edit the article"`
	Delete   cmd.Delete   `command:"delete" description:"delete the article"`
	Contacts cmd.Contacts `command:"contacts" description:"list contact form submissions"`

	EnvFile  string `long:"env-file" env:"ENV_FILE" default:".env" description:"file with environment variables"`
	JSONLogs bool   `long:"json-logs" env:"JSON_LOGS" description:"turn on json logs"`
	Debug    bool   `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
}

var version = "unknown"

func getVersion() string {
	v, ok := debug.ReadBuildInfo()
	if !ok || v.Main.Version == "(devel)" {
		return version
	}
	return v.Main.Version
}

func main() {
	fmt.Fprintf(os.Stderr, "politicalfeed, version: %s\n", getVersion())

	loadEnv()

	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLog()

		if err := cmd.Execute(args); err != nil {
			slog.Error("failed to execute command", slog.Any("err", err))
			os.Exit(1)
		}

		return nil
	}

	// after failure command does not return non-zero code
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			slog.Error("failed to parse flags", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// loadEnv loads the env file before parsing, so the flags can be set from it.
// Variables already present in the environment are not overridden.
func loadEnv() {
	var envOpts struct {
		EnvFile string `long:"env-file" env:"ENV_FILE" default:".env"`
	}

	if _, err := flags.NewParser(&envOpts, flags.IgnoreUnknown).ParseArgs(os.Args[1:]); err != nil {
		return
	}

	if err := godotenv.Load(envOpts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load env file %q: %v\n", envOpts.EnvFile, err)
	}
}

func setupLog() {
	handler := slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}

	if opts.Debug {
		handler.Level = slog.LevelDebug
		handler.AddSource = true
	}

	var h slog.Handler = handler.NewTextHandler(os.Stderr)
	if opts.JSONLogs {
		h = handler.NewJSONHandler(os.Stderr)
	}

	slog.SetDefault(slog.New(&logx.Chain{Middleware: []logx.Middleware{logx.RequestID}, Handler: h}))
}
