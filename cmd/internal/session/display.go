package session

import "sync"

// DocumentFlag is the process-wide display attribute the dashboard toggles to
// switch between light and dark presentation.
type DocumentFlag struct {
	mu   sync.Mutex
	dark bool
}

func (d *DocumentFlag) SetDark(dark bool) {
	d.mu.Lock()
	d.dark = dark
	d.mu.Unlock()
}

func (d *DocumentFlag) Dark() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dark
}
