package engine

import "time"

// fpsCounter averages frames over roughly one second windows
type fpsCounter struct {
	frames int
	since  time.Time
}

func (c *fpsCounter) reset(now time.Time) {
	c.frames = 0
	c.since = now
}

// tick counts a frame and reports the rate once a second has passed
func (c *fpsCounter) tick(now time.Time) (float64, bool) {
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(c.frames) / elapsed.Seconds()
	c.reset(now)
	return fps, true
}
