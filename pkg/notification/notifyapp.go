package notification

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultNotifyAppURL is the base URL of the open source Notify app service
const DefaultNotifyAppURL = "https://appnotify.herokuapp.com"

// NotifyAppClient sends notifications through the open source Notify app
// (https://github.com/mashlol/notify).
type NotifyAppClient struct {
	http    *http.Client
	baseURL string
	key     string
	log     logrus.FieldLogger
}

// NewNotifyAppClient creates a new Notify app client
func NewNotifyAppClient(httpc *http.Client, baseURL, key string, log logrus.FieldLogger) *NotifyAppClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultNotifyAppURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotifyAppClient{
		http:    httpc,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
		log:     log,
	}
}

// Send delivers the notification with a GET request
func (c *NotifyAppClient) Send(notification Notification) error {
	u, err := url.Parse(c.baseURL + "/notify")
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("to", c.key)
	q.Set("title", notification.Title())
	q.Set("text", notification.Message())
	u.RawQuery = q.Encode()

	c.log.Debug("Sending notification via Notify app")
	resp, err := c.http.Get(u.String())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.WithField("status", resp.Status).Debug("Notify response")
	return checkResponse("Notify app", resp)
}
