package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yungtweek/openclaw-agent/internal/probe"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	baseURL    string
	logFile    string
	daemon     bool
	once       bool
	streamOnly bool
	taskOnly   bool
)

func newLogger(path string) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
		}),
		zapcore.InfoLevel,
	)
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	return zap.New(zapcore.NewTee(fileCore, consoleCore)).Sugar()
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger(logFile)
	defer func() { _ = log.Sync() }()

	p := probe.New(probe.DefaultConfig(baseURL), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case daemon:
		p.RunDaemon(ctx)
		return nil
	case streamOnly:
		if err := p.CheckStream(ctx); err != nil {
			log.Errorw("[probe][stream] FAILED", "err", err)
			return fmt.Errorf("stream check failed")
		}
		return nil
	case taskOnly:
		if err := p.CheckTask(ctx); err != nil {
			log.Errorw("[probe][task] FAILED", "err", err)
			return fmt.Errorf("task check failed")
		}
		return nil
	default:
		// --once and the bare invocation behave the same.
		if !p.RunOnce(ctx) {
			return fmt.Errorf("health check failed")
		}
		return nil
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "healthcheck",
		Short:         "Health check for the openclaw agent API",
		Long:          "Exercises POST /task/send and GET /stream against a running agent and logs pass/fail.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8000", "agent base URL")
	rootCmd.Flags().StringVar(&logFile, "log-file", "logs/health_check.log", "log file path (rotated)")
	rootCmd.Flags().BoolVar(&daemon, "daemon", false, "run continuously with random intervals")
	rootCmd.Flags().BoolVar(&once, "once", false, "run one full check and exit (default)")
	rootCmd.Flags().BoolVar(&streamOnly, "stream-only", false, "test only the stream endpoint")
	rootCmd.Flags().BoolVar(&taskOnly, "task-only", false, "test only the task endpoint")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
