package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for probe and scrape routes.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration governing a request, or nil when only
// the default limit applies. A config path covers itself and every path below
// it ("/api/submit" covers "/api/submit/stream"); the longest covering path wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && (path == "/health" || path == "/metrics") {
		u := unlimited
		return &u
	}

	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method || !covers(cfg.Path, path) {
			continue
		}
		if best == nil || len(cfg.Path) > len(best.Path) {
			best = cfg
		}
	}
	return best
}

func covers(prefix, path string) bool {
	if path == prefix {
		return true
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return strings.HasPrefix(path, prefix+"/")
}
