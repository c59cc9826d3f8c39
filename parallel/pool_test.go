package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInline(t *testing.T) {
	p := Start(1)
	assert.Equal(t, 1, p.Size())

	var n int
	for range 10 {
		p.Do(func() { n++ })
	}
	// inline tasks are done before Do returns
	assert.Equal(t, 10, n)
	p.Wait(true)
}

func TestDefaultSize(t *testing.T) {
	p := Start(0)
	defer p.Wait(true)
	assert.GreaterOrEqual(t, p.Size(), 1)
}

func TestWaitReuse(t *testing.T) {
	p := Start(4)
	var n atomic.Int64

	for round := 1; round <= 3; round++ {
		for range 100 {
			p.Do(func() { n.Add(1) })
		}
		p.Wait(false)
		assert.Equal(t, int64(100*round), n.Load())
	}

	p.Wait(true)
	// shutting down twice is harmless
	p.Cancel()
	p.Wait(true)
}
