package httpx

import "log/slog"

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates dumped requests and responses; zero keeps them whole.
func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

// WithSensitiveDataMasker swaps the masker, e.g. logx.NewCredentialsMasker
// to see feature vectors while debugging.
func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithLogLevel sets the level of the exchange dumps. Debug by default.
func WithLogLevel(level slog.Level) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logLevel = level
	}
}
