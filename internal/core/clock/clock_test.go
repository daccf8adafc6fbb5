package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTick(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewWithSource(ft.now)

	assert.Equal(t, 0.0, c.Tick())
	assert.Equal(t, int64(1), c.Frame())

	ft.advance(16 * time.Millisecond)
	assert.InDelta(t, 0.016, c.Tick(), 1e-12)

	ft.advance(250 * time.Millisecond)
	assert.InDelta(t, 0.25, c.Tick(), 1e-12)
	assert.InDelta(t, 0.25, c.DeltaTime(), 1e-12)

	assert.Equal(t, int64(3), c.Frame())
	assert.Equal(t, 266*time.Millisecond, c.Total())
}

func TestTotalBeforeFirstTick(t *testing.T) {
	assert.Equal(t, time.Duration(0), New().Total())
}
