package notification

import (
	"github.com/Veraticus/alert/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewNotifier creates the notifier backend selected by cfg.
// The configuration is validated here so a broken setup is reported before
// any long running command starts.
func NewNotifier(cfg *config.Config, log logrus.FieldLogger) (Notifier, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	switch cfg.Notifier {
	case config.NotifierConsole:
		return NewConsoleNotifier(), nil
	case config.NotifierDesktop:
		return NewDesktopNotifier(), nil
	case config.NotifierNotifyApp:
		httpc, err := NewHTTPClient(cfg.Transport)
		if err != nil {
			return nil, err
		}
		return NewNotifyAppClient(httpc, DefaultNotifyAppURL, cfg.NotifyApp.Key, log), nil
	case config.NotifierPushover:
		httpc, err := NewHTTPClient(cfg.Transport)
		if err != nil {
			return nil, err
		}
		return NewPushoverClient(httpc, DefaultPushoverURL, cfg.Pushover.Token, cfg.Pushover.User, log), nil
	default:
		return nil, &config.UnknownNotifierError{Name: cfg.Notifier}
	}
}

// IsRemote reports whether the backend delivers over the network
func IsRemote(name string) bool {
	return name == config.NotifierNotifyApp || name == config.NotifierPushover
}
