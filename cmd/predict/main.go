// Command predict sends one feature vector to a running diagnosis API and
// prints the predicted class.
//
//	predict 17.99,10.38,122.8 ...
//	PREDICT_API_URL=http://host:5000 predict "17.99 10.38 122.8 ..."
//	PREDICT_VERBOSE=true predict 17.99,10.38,122.8 ...
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"

	"diagnosis_api/internal/client"
	"diagnosis_api/pkg/logx"
	"diagnosis_api/pkg/lox"
)

type config struct {
	APIURL   string        `env:"PREDICT_API_URL" envDefault:"http://localhost:5000"`
	Timeout  time.Duration `env:"PREDICT_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
	Verbose  bool          `env:"PREDICT_VERBOSE" envDefault:"false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called above
	}
}

func run(ctx context.Context, args []string) error {
	var cfg config

	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("env.Parse: %w", err)
	}

	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logx.ParseLevel: %w", err)
	}

	clientOpts := []client.Option{client.WithTimeout(cfg.Timeout)}

	// Verbose mode prints the HTTP exchange with the feature values masked.
	if cfg.Verbose {
		level = min(level, slog.LevelInfo)
		clientOpts = append(clientOpts, client.WithLogLevel(slog.LevelInfo))
	}

	log, err := logx.New(os.Stderr, logx.FormatText, level)
	if err != nil {
		return fmt.Errorf("logx.New: %w", err)
	}

	slog.SetDefault(log)

	features, err := parseFeatures(args)
	if err != nil {
		return fmt.Errorf("parseFeatures: %w", err)
	}

	label, err := client.New(cfg.APIURL, clientOpts...).Predict(ctx, features)
	if err != nil {
		return fmt.Errorf("client.Predict: %w", err)
	}

	fmt.Println(label) //nolint:forbidigo

	return nil
}

// parseFeatures accepts values split by commas, whitespace or both, across
// any number of arguments.
func parseFeatures(args []string) ([]float64, error) {
	fields := strings.FieldsFunc(strings.Join(args, " "), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	if len(fields) == 0 {
		return nil, errors.New("no feature values given")
	}

	features, err := lox.MapErr(fields, func(field string) (float64, error) {
		return strconv.ParseFloat(field, 64)
	})
	if err != nil {
		return nil, fmt.Errorf("lox.MapErr: %w", err)
	}

	return features, nil
}
