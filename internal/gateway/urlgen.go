package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// URLGenerator turns a named host route plus parameters into an absolute
// URL. The host router is a collaborator; the facade never builds paths
// itself.
type URLGenerator interface {
	Generate(route string, params map[string]string) (string, error)
}

// EchoURLGenerator resolves routes registered on an echo instance.
// Parameters matching path segments are substituted into the path, the
// rest become query parameters. Values containing the gateway's literal
// ${id}/${refId} templates are masked with dummy tokens before encoding
// and restored afterwards, so the templates survive byte-identical.
type EchoURLGenerator struct {
	e       *echo.Echo
	baseURL string
}

// NewEchoURLGenerator creates a generator producing absolute URLs rooted
// at baseURL (scheme and host, no trailing slash).
func NewEchoURLGenerator(e *echo.Echo, baseURL string) *EchoURLGenerator {
	return &EchoURLGenerator{e: e, baseURL: strings.TrimRight(baseURL, "/")}
}

func (g *EchoURLGenerator) Generate(route string, params map[string]string) (string, error) {
	if !routeExists(g.e, route) {
		return "", fmt.Errorf("url generator: unknown route %q", route)
	}
	path := g.e.Reverse(route)

	query := url.Values{}
	for key, value := range params {
		masked := maskTemplates(value)
		token := ":" + key
		if strings.Contains(path, token) {
			path = strings.Replace(path, token, url.PathEscape(masked), 1)
			continue
		}
		query.Set(key, masked)
	}

	full := g.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return replacePlaceholders(full), nil
}

func routeExists(e *echo.Echo, name string) bool {
	for _, r := range e.Routes() {
		if r.Name == name {
			return true
		}
	}
	return false
}
