package notification

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/alert/pkg/config"
	"golang.org/x/net/proxy"
)

// NewHTTPClient builds the client used by the push notifiers.
// Proxies may be http(s):// or socks5://.
func NewHTTPClient(tcfg config.TransportConfig) (*http.Client, error) {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   20 * time.Second,
			KeepAlive: 20 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if tcfg.Proxy != "" {
		u, err := url.Parse(tcfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			tr.Proxy = http.ProxyURL(u)
			if tcfg.ProxyAuth != "" {
				tr.ProxyConnectHeader = http.Header{}
				tr.ProxyConnectHeader.Set("Proxy-Authorization",
					"Basic "+base64.StdEncoding.EncodeToString([]byte(tcfg.ProxyAuth)))
			}
		case "socks5", "socks5h":
			dialer, err := socks5Dialer(u, tcfg.ProxyAuth)
			if err != nil {
				return nil, err
			}
			contextDialer, ok := dialer.(proxy.ContextDialer)
			if !ok {
				return nil, errors.New("socks5 dialer does not support contexts")
			}
			tr.Proxy = nil
			tr.DialContext = contextDialer.DialContext
		default:
			return nil, errors.New("unsupported proxy scheme (use http(s):// or socks5://)")
		}
	}

	timeout := tcfg.Timeout
	if timeout == 0 {
		timeout = config.DefaultConfig().Transport.Timeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}, nil
}

func socks5Dialer(u *url.URL, userpass string) (proxy.Dialer, error) {
	var auth *proxy.Auth
	if userpass != "" {
		parts := strings.SplitN(userpass, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New("invalid proxy auth format, expected user:pass")
		}
		auth = &proxy.Auth{User: parts[0], Password: parts[1]}
	}
	if u.Host == "" {
		return nil, errors.New("invalid SOCKS5 proxy address")
	}
	return proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
}

// checkResponse turns a non-2xx response into a SendError
func checkResponse(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &SendError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}
