package transcript

import (
	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/kkdai/youtube/v2"
)

// New builds the production resolver with all four strategies from config.
func New(c *engine.Config) *Resolver {
	langs := Langs(c.PrimaryLang, c.SecondaryLang)
	return NewResolver(
		&DirectProbe{
			Client:  c.HTTPClient,
			Langs:   langs,
			Timeout: c.ProbeTimeout,
		},
		&PageScrape{
			PageClient:    engine.PageDoer(c),
			CaptionClient: c.HTTPClient,
			Langs:         langs,
			Timeout:       c.ScrapeTimeout,
		},
		&YtDlp{
			Enabled: c.YtDlpEnabled,
			Path:    c.YtDlpPath,
			Langs:   langs,
			Timeout: c.YtDlpTimeout,
		},
		&LibraryFallback{
			Lib:     &YouTubeLibrary{Client: &youtube.Client{HTTPClient: c.HTTPClient}},
			Langs:   langs,
			Timeout: c.LibraryTimeout,
		},
	)
}

// Langs returns the non-empty, distinct language preferences in order.
func Langs(primary, secondary string) []string {
	var out []string
	for _, l := range []string{primary, secondary} {
		if l == "" || (len(out) > 0 && out[0] == l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
