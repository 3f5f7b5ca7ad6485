package ports

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	corsAllowedMethods = "POST"
	corsAllowedHeaders = "Content-Type, X-User-Id"
	corsMaxAgeSeconds  = "3600"
)

// DomainSuffixes are the hosts whose https origins, subdomains included, may call the API
type DomainSuffixes struct {
	hosts []string
}

func NewDomainSuffixes(suffixes ...string) (*DomainSuffixes, error) {
	hosts := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		switch {
		case strings.HasPrefix(suffix, "."):
			return nil, fmt.Errorf("domain suffix %s should not start with a dot", suffix)
		case strings.Contains(suffix, "://"):
			return nil, fmt.Errorf("domain suffix %s should not contain a scheme", suffix)
		case suffix == "" || strings.ContainsAny(suffix, "/:"):
			return nil, fmt.Errorf("domain suffix '%s' is not a hostname", suffix)
		}
		hosts = append(hosts, strings.ToLower(suffix))
	}
	return &DomainSuffixes{hosts: hosts}, nil
}

// AnyMatch reports whether origin is an https origin on the default port for
// one of the hosts or a subdomain of one
func (d *DomainSuffixes) AnyMatch(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme != "https" || parsed.Port() != "" {
		return false
	}
	if parsed.Path != "" || parsed.RawQuery != "" || parsed.User != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range d.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func BuildCORSMiddleware(allowedOrigins *DomainSuffixes) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !allowedOrigins.AnyMatch(origin) {
				next(w, r)
				return
			}

			header := w.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")

			if r.Method != http.MethodOptions {
				next(w, r)
				return
			}

			header.Set("Access-Control-Allow-Methods", corsAllowedMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			header.Set("Access-Control-Max-Age", corsMaxAgeSeconds)
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// BuildCORSHandler answers preflight requests for an endpoint
func BuildCORSHandler(allowedOrigins *DomainSuffixes) http.HandlerFunc {
	return BuildCORSMiddleware(allowedOrigins)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
