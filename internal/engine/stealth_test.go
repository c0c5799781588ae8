package engine

import (
	"net/http"
	"testing"
)

func TestChromeHeaders(t *testing.T) {
	h := ChromeHeaders()

	required := []string{"accept", "accept-language", "user-agent"}
	for _, key := range required {
		if _, ok := h[key]; !ok {
			t.Errorf("ChromeHeaders() missing key %q", key)
		}
	}
	if ua := h["user-agent"]; len(ua) < 20 {
		t.Errorf("user-agent too short: %q", ua)
	}
}

func TestPageDoer(t *testing.T) {
	if d := PageDoer(&Config{}); d != nil {
		t.Errorf("PageDoer(empty) = %T, want nil", d)
	}

	hc := &http.Client{}
	if d := PageDoer(&Config{HTTPClient: hc}); d != hc {
		t.Errorf("PageDoer without browser client = %v, want HTTPClient", d)
	}

	bc := &BrowserClient{}
	d, ok := PageDoer(&Config{HTTPClient: hc, BrowserClient: bc}).(BrowserDoer)
	if !ok || d.BC != bc {
		t.Errorf("PageDoer with browser client did not return BrowserDoer")
	}
}
