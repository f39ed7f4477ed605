package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/klardotsh/kaboom/pkg/config"
	"github.com/klardotsh/kaboom/pkg/feed"
)

// Opts with all CLI options
type Opts struct {
	File    string `short:"f" long:"file" description:"path to Atom feed (default: feed.xml)"`
	NoOp    bool   `short:"n" long:"no-op" description:"do not write anything to disk, but still show what would change"`
	Config  string `long:"config" description:"YAML file with defaults"`
	Debug   bool   `long:"dbg" description:"debug mode"`
	NoColor bool   `long:"no-color" description:"disable color output"`

	Meta    MetaCommand    `command:"meta" description:"manage the metadata of the Atom feed, for example the title or links"`
	Prune   PruneCommand   `command:"prune" description:"remove entries from the Atom feed, archiving them to a reject file"`
	Add     AddCommand     `command:"add" description:"add an entry to the top of the Atom feed"`
	Version VersionCommand `command:"version" description:"display version info and exit"`
}

const (
	appName     = "kaboom"
	appHomepage = "https://github.com/klardotsh/kaboom"
)

var revision = "unknown"

// environment is shared by all commands. It's filled in once global options are parsed.
type environment struct {
	ctx    context.Context
	file   string
	noOp   bool
	conf   *config.Config
	stdout io.Writer
	now    func() time.Time
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[WARN] termination signal received")
		cancel()
	}()

	err := run(ctx, os.Args[1:], os.Stdout)
	cancel()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			os.Exit(0)
		}
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run parses args and executes the requested command
func run(ctx context.Context, args []string, stdout io.Writer) error {
	var opts Opts
	env := &environment{ctx: ctx, stdout: stdout, now: time.Now}
	opts.Meta.env, opts.Prune.env, opts.Add.env, opts.Version.env = env, env, env, env

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, cmdArgs []string) error {
		if cmd == nil {
			return nil
		}
		setupLog(opts.Debug)
		if opts.NoColor {
			color.NoColor = true
		}
		if _, isVersion := cmd.(*VersionCommand); !isVersion {
			if err := env.setup(opts); err != nil {
				return err
			}
		}
		return cmd.Execute(cmdArgs)
	}

	_, err := parser.ParseArgs(args)
	return err
}

// setup applies global options and the optional config file
func (e *environment) setup(opts Opts) error {
	e.noOp = opts.NoOp
	e.conf = config.Default()
	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		e.conf = cfg
	}

	e.file = e.conf.File
	if opts.File != "" {
		e.file = opts.File
	}
	log.Printf("[DEBUG] feed file %s, no-op %v", e.file, e.noOp)
	return nil
}

// write stores the feed at path unless no-op mode is on
func (e *environment) write(f *feed.Feed, path string) error {
	if e.noOp {
		log.Printf("[WARN] not writing %s because no-op was requested", path)
		return nil
	}
	log.Printf("[DEBUG] writing results to %s", path)
	return feed.Write(e.ctx, f, path)
}

// touch marks the feed as updated now and stamps the generator unless disabled
func (e *environment) touch(f *feed.Feed, noGenerator bool) {
	f.Updated = e.now().UTC().Truncate(time.Second)
	if noGenerator || e.conf.NoGenerator {
		return
	}
	f.Generator = &feed.Generator{Value: appName, URI: appHomepage, Version: revision}
}

func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(io.Discard)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
