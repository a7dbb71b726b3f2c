package types

import "sync"

// SimCache is the process-wide, single-writer/multi-reader view of the live
// sim's most recent variable values. Its variable values are written only
// by the SimLink UDP worker; the paused/simRunning flags are updated by the
// Dispatcher's tick through SetPaused. The Dispatcher's tick and every
// session's evaluator read it.
type SimCache struct {
	mu        sync.RWMutex
	values    map[string]Value
	paused    bool
	simRunning bool
}

func NewSimCache() *SimCache {
	return &SimCache{values: make(map[string]Value)}
}

// Get returns the current value for a live variable name and whether it is
// present; absence is not an error, callers substitute the datum's default.
func (c *SimCache) Get(name string) (Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

func (c *SimCache) SetNumber(name string, n float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = NumberValue(n)
}

func (c *SimCache) SetText(name string, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = TextValue(s)
}

// Len reports how many variables are currently cached.
func (c *SimCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Reset clears every cached variable; used on a RES:1 handshake restart.
func (c *SimCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]Value)
	c.paused = false
	c.simRunning = false
}

func (c *SimCache) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

func (c *SimCache) SimRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.simRunning
}

// SetPaused updates the paused flag and latches simRunning true the first
// time paused becomes false. It returns the (pausedChanged, runningChanged)
// transition flags the Dispatcher fans out on.
func (c *SimCache) SetPaused(paused bool) (pausedChanged, runningChanged bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pausedChanged = c.paused != paused
	c.paused = paused
	wasRunning := c.simRunning
	if !paused {
		c.simRunning = true
	}
	runningChanged = c.simRunning != wasRunning
	return
}
