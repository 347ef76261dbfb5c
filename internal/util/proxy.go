package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a proxy function from explicit configuration, falling
// back to the standard environment variables when none is given.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
