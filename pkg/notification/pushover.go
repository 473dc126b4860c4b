package notification

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultPushoverURL is the pushover.net API base
const DefaultPushoverURL = "https://api.pushover.net"

// PushoverClient sends notifications through pushover.net.
// Pushover is a trademark of Superblock, LLC; this client is not associated with it.
type PushoverClient struct {
	http    *http.Client
	baseURL string
	token   string
	user    string
	log     logrus.FieldLogger
}

// NewPushoverClient creates a new pushover client
func NewPushoverClient(httpc *http.Client, baseURL, token, user string, log logrus.FieldLogger) *PushoverClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultPushoverURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PushoverClient{
		http:    httpc,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		user:    user,
		log:     log,
	}
}

// sound picks a pushover sound for the outcome
func sound(outcome Outcome) string {
	if outcome == Success {
		return "classical"
	}
	return "tugboat"
}

// Send posts the notification to the pushover messages API
func (p *PushoverClient) Send(notification Notification) error {
	form := url.Values{}
	form.Set("token", p.token)
	form.Set("user", p.user)
	form.Set("title", notification.Title())
	form.Set("sound", sound(notification.Outcome))
	form.Set("message", notification.Message())

	p.log.Debug("Sending notification via pushover")
	resp, err := p.http.PostForm(p.baseURL+"/1/messages.json", form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	p.log.WithField("status", resp.Status).Debug("Pushover response")
	return checkResponse("pushover.net", resp)
}
