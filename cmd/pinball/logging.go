package main

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// logLevel is a pflag.Value over logrus levels.
type logLevel logrus.Level

var _ pflag.Value = (*logLevel)(nil)

func newLogLevel() *logLevel {
	l := logLevel(logrus.InfoLevel)
	return &l
}

func (l *logLevel) String() string { return logrus.Level(*l).String() }
func (l *logLevel) Type() string   { return "level" }

func (l *logLevel) Set(s string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*l = logLevel(lvl)
	return nil
}

func setupLogging(o *runOpts) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl := logrus.Level(*o.logLevel)
	if o.verbose {
		lvl = max(lvl, logrus.DebugLevel)
	}
	logrus.SetLevel(lvl)

	if o.logFile == "" {
		logrus.SetOutput(os.Stderr)
		return nil
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   o.logFile,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
	return nil
}
