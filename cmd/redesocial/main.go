package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"redesocial/internal/service/impl"
	"redesocial/internal/shell"
	"redesocial/internal/storage/file"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	StorageFile string `long:"storage.file" env:"STORAGE_FILE" default:"dados.json" description:"path to the persisted social graph document"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Rede Social"
	parser.LongDescription = "Rede Social"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			ServerName:       "redesocial",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	svc := impl.New(file.New(opts.StorageFile))

	if err := svc.Load(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to load social graph")
	}

	sh := shell.New(svc, os.Stdin, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())

	gr, _ := errgroup.WithContext(ctx)
	gr.Go(func() error {
		defer cancel()
		return sh.Run(ctx)
	})
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		for {
			select {
			case s := <-sigs:
				// an interrupt returns to the main menu, only a
				// termination signal shuts the shell down
				if s == syscall.SIGINT {
					sh.Interrupt()
					continue
				}

				logrus.Infof("terminating by %s signal", s)

				cancel()

				return errTerminated
			case <-ctx.Done():
				return nil
			}
		}
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) {
		logrus.WithError(err).Fatal("shell unexpectedly closed")
	}
}
