package ui

// bootGate decides when the host dismisses the loading overlay. It opens
// only once the minimum display time has elapsed and every boot task has
// finished, whichever happens last.
type bootGate struct {
	timerDone bool
	booted    bool
	opened    bool
}

// TimerDone marks the minimum display time as elapsed.
func (g bootGate) TimerDone() bootGate {
	g.timerDone = true
	return g
}

// Booted marks every boot task as finished.
func (g bootGate) Booted() bootGate {
	g.booted = true
	return g
}

// Open reports whether the overlay may be dismissed now, and latches so
// that it reports true only once.
func (g bootGate) Open() (bootGate, bool) {
	if g.opened || !g.timerDone || !g.booted {
		return g, false
	}
	g.opened = true
	return g, true
}
