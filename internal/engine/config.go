package engine

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HTTPPort string `yaml:"http_port"`
	MCPPort  string `yaml:"mcp_port"` // empty = MCP transport disabled

	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiAPIBase string `yaml:"gemini_api_base"`
	GeminiModel   string `yaml:"gemini_model"`

	// OpenAI-compatible backend, used instead of Gemini REST when LLMAPIBase is set.
	LLMAPIBase string `yaml:"llm_api_base"`
	LLMAPIKey  string `yaml:"llm_api_key"`
	LLMModel   string `yaml:"llm_model"`

	LLMAPIKeyFallbacks []string `yaml:"llm_api_key_fallbacks"`

	SummaryLanguage    string  `yaml:"summary_language"`
	SummaryParagraphs  int     `yaml:"summary_paragraphs"`
	SummaryMaxChars    int     `yaml:"summary_max_chars"`
	SummaryTemperature float64 `yaml:"summary_temperature"`
	SummaryTopK        int     `yaml:"summary_top_k"`
	SummaryTopP        float64 `yaml:"summary_top_p"`
	SummaryMaxTokens   int     `yaml:"summary_max_tokens"`

	PrimaryLang   string `yaml:"primary_lang"`
	SecondaryLang string `yaml:"secondary_lang"`

	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	ScrapeTimeout   time.Duration `yaml:"scrape_timeout"`
	YtDlpEnabled    bool          `yaml:"ytdlp_enabled"`
	YtDlpPath       string        `yaml:"ytdlp_path"`
	YtDlpTimeout    time.Duration `yaml:"ytdlp_timeout"`
	LibraryTimeout  time.Duration `yaml:"library_timeout"`
	MetadataTimeout time.Duration `yaml:"metadata_timeout"`
	SummaryTimeout  time.Duration `yaml:"summary_timeout"`

	HTTPClient    *http.Client   `yaml:"-"`
	BrowserClient *BrowserClient `yaml:"-"` // nil = watch page fetched with HTTPClient
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// LoadFile overlays the YAML file at path onto c.
// Keys missing from the file keep their current values.
func LoadFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
