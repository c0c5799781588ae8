package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsum/internal/engine/summary"
	"github.com/anatolykoptev/go_ytsum/internal/engine/transcript"
	"github.com/anatolykoptev/go_ytsum/internal/ytserver"
	"github.com/joho/godotenv"
)

// loadConfig reads .env, the environment and then the optional YAML file.
func loadConfig(path string) (engine.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env", slog.Any("error", err))
	}

	c := engine.Config{
		HTTPPort: env.Str("HTTP_PORT", "8080"),
		MCPPort:  env.Str("MCP_PORT", ""),

		GeminiAPIKey:  env.Str("GEMINI_API_KEY", ""),
		GeminiAPIBase: env.Str("GEMINI_API_BASE", summary.GeminiAPIBase),
		GeminiModel:   env.Str("GEMINI_MODEL", summary.GeminiModel),

		LLMAPIBase:         env.Str("LLM_API_BASE", ""),
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMModel:           env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),

		SummaryLanguage:    env.Str("SUMMARY_LANGUAGE", summary.DefaultLanguage),
		SummaryParagraphs:  env.Int("SUMMARY_PARAGRAPHS", summary.DefaultParagraphs),
		SummaryMaxChars:    env.Int("SUMMARY_MAX_CHARS", summary.DefaultMaxChars),
		SummaryTemperature: env.Float("SUMMARY_TEMPERATURE", 0.7),
		SummaryTopK:        env.Int("SUMMARY_TOP_K", 40),
		SummaryTopP:        env.Float("SUMMARY_TOP_P", 0.95),
		SummaryMaxTokens:   env.Int("SUMMARY_MAX_TOKENS", 1000),

		PrimaryLang:   env.Str("PRIMARY_LANG", "tr"),
		SecondaryLang: env.Str("SECONDARY_LANG", "en"),

		ProbeTimeout:    env.Duration("PROBE_TIMEOUT", 15*time.Second),
		ScrapeTimeout:   env.Duration("SCRAPE_TIMEOUT", 15*time.Second),
		YtDlpEnabled:    envBool("YTDLP_ENABLED", true),
		YtDlpPath:       env.Str("YTDLP_PATH", "yt-dlp"),
		YtDlpTimeout:    env.Duration("YTDLP_TIMEOUT", 60*time.Second),
		LibraryTimeout:  env.Duration("LIBRARY_TIMEOUT", 30*time.Second),
		MetadataTimeout: env.Duration("METADATA_TIMEOUT", 10*time.Second),
		SummaryTimeout:  env.Duration("SUMMARY_TIMEOUT", 60*time.Second),
	}

	if path != "" {
		if err := engine.LoadFile(path, &c); err != nil {
			return c, err
		}
	}

	c.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
	c.BrowserClient = newBrowserClient(env.Str("WEBSHARE_API_KEY", ""))
	return c, nil
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(env.Str(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

// newBrowserClient returns a Chrome-fingerprinted client for the watch page,
// or nil when it cannot be built.
func newBrowserClient(webshareKey string) *engine.BrowserClient {
	opts := []stealth.ClientOption{stealth.WithTimeout(15)}

	if webshareKey != "" {
		pool, err := proxypool.NewWebshare(webshareKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed", slog.Any("error", err))
		return nil
	}
	return bc
}

// newService wires the pipeline from config.
func newService(c *engine.Config) *ytserver.Service {
	return &ytserver.Service{
		Transcripts: transcript.New(c),
		Metadata: &sources.OEmbed{
			Client:  c.HTTPClient,
			Timeout: c.MetadataTimeout,
		},
		Summarizer: newSummarizer(c),
	}
}

func newSummarizer(c *engine.Config) *summary.Summarizer {
	sc := summary.Config{
		APIKey:          c.GeminiAPIKey,
		BaseURL:         c.GeminiAPIBase,
		Model:           c.GeminiModel,
		Language:        c.SummaryLanguage,
		Paragraphs:      c.SummaryParagraphs,
		MaxChars:        c.SummaryMaxChars,
		Temperature:     c.SummaryTemperature,
		TopK:            c.SummaryTopK,
		TopP:            c.SummaryTopP,
		MaxOutputTokens: c.SummaryMaxTokens,
		Timeout:         c.SummaryTimeout,
	}
	if c.LLMAPIBase != "" {
		slog.Info("summary backend: openai-compatible", slog.String("base", c.LLMAPIBase))
		return summary.NewWithGenerator(sc, &summary.LLMGenerator{Client: engine.NewLLMClient(c)})
	}
	if c.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, summaries will be placeholders")
	}
	return summary.New(sc)
}

// setup loads config, initializes the engine and builds the service.
func setup() (*ytserver.Service, error) {
	c, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	engine.Init(c)
	return newService(engine.Cfg), nil
}
