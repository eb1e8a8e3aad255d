package session

import "github.com/labstack/gommon/log"

// LogNotifier writes notifications to the application log. It is the default
// when no toast-style sink is wired in.
type LogNotifier struct{}

func (LogNotifier) Notify(variant, title, description string) {
	if variant == VariantDestructive {
		log.Warnf("%s: %s", title, description)
		return
	}
	log.Infof("%s: %s", title, description)
}
