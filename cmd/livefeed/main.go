package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"livefeed/internal/app"
	"livefeed/internal/command"
	"livefeed/internal/config"
	"livefeed/internal/feed"
	"livefeed/internal/keys"
	"livefeed/internal/logger"
	"livefeed/internal/source"
	"livefeed/internal/term"
	"livefeed/internal/transcript"
	"livefeed/internal/window"

	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

var version = "dev"

var log = logger.Named("main")

func main() {
	logger.Configure()

	root, err := parseRootArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "livefeed: %v\n", err)
		os.Exit(2)
	}
	if root.version {
		fmt.Println("livefeed", version)
		return
	}

	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "livefeed: failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = config.ApplyKVOverrides(cfg, root.overrides)
	if root.dataDir {
		fmt.Println(cfg.DataDir)
		return
	}

	if logFile, _, err := logger.SetupFile(cfg.LogPath); err != nil {
		logger.Warnf("failed to initialize log file: %v", err)
		// 终端被渲染器占用，日志无处可写时直接丢弃。
		logger.Discard()
	} else {
		defer logFile.Close()
	}

	if err := run(cfg, root); err != nil {
		logger.Errorf("livefeed exited: %v", err)
		fmt.Fprintf(os.Stderr, "livefeed: %v\n", err)
		os.Exit(1)
	}
}

type producer interface {
	Run(ctx context.Context, out chan<- feed.Entry) error
}

func newProducer(cfg config.Config, root rootArgs) (producer, error) {
	switch {
	case root.debug:
		return source.NewSimulator(cfg.Simulate, nil), nil
	case root.follow != "":
		return source.NewFollower(root.follow), nil
	default:
		return nil, errors.New("no feed: pass -debug for a simulated chat or -follow <file>")
	}
}

func run(cfg config.Config, root rootArgs) error {
	src, err := newProducer(cfg, root)
	if err != nil {
		return err
	}
	inFd, outFd := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !xterm.IsTerminal(inFd) || !xterm.IsTerminal(outFd) {
		return errors.New("stdin and stdout must be a terminal")
	}

	var rec app.Recorder
	if cfg.Transcribe {
		tr, err := transcript.Open(cfg.DataDir, nil)
		if err != nil {
			return err
		}
		defer tr.Close()
		log.WithField("path", tr.Path()).Info("transcript opened")
		rec = tr
	}

	state, err := xterm.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer xterm.Restore(inFd, state)

	out := term.NewWriter(os.Stdout, outFd)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		out.SetProfile(termenv.Ascii)
	}
	log.WithField("profile", out.Profile()).Debug("color profile")
	if err := out.Setup(); err != nil {
		return fmt.Errorf("terminal setup: %w", err)
	}
	defer out.Restore()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	entries := make(chan feed.Entry, app.EntryBuffer)
	commands := make(chan command.Command, app.CommandBuffer)
	km := keys.DefaultKeyMap()

	var (
		wg     sync.WaitGroup
		srcErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := src.Run(ctx, entries); err != nil && !errors.Is(err, source.ErrSourceClosed) {
			srcErr = err
		}
	}()
	go func() {
		defer wg.Done()
		if err := keys.NewReader(os.Stdin, commands, km).Run(ctx); err != nil {
			log.WithError(err).Warn("key reader stopped")
		}
	}()

	win := window.New(out, window.Options{
		BufferMax:       cfg.BufferMax,
		NameColumnWidth: cfg.NameColumnWidth,
		MinWidth:        cfg.MinWidth,
		ShowTimestamps:  cfg.ShowTimestamps,
		LinkLimit:       cfg.LinkLimit,
		StatusTTL:       cfg.StatusTTL(),
		Clock:           time.Now,
	})
	loop := app.New(win, out, entries, commands, app.Options{
		PollInterval: cfg.PollInterval(),
		HelpText:     km.HelpText(),
		Recorder:     rec,
	})
	err = loop.Run(ctx)
	cancel()
	wg.Wait()
	if err != nil {
		return err
	}
	return srcErr
}
