package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/markov-invaders/constant"
)

// soundCache stores pre-rendered unity-gain effect buffers
// Effects are deterministic, so each is synthesized once per sample rate
type soundCache struct {
	mu    sync.RWMutex
	rate  beep.SampleRate
	store [soundTypeCount]*beep.Buffer
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{rate: rate}
}

// get returns cached buffer or renders on demand
func (c *soundCache) get(st SoundType) (*beep.Buffer, error) {
	if st < 0 || st >= soundTypeCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSound, int(st))
	}

	c.mu.RLock()
	if buf := c.store[st]; buf != nil {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf := c.store[st]; buf != nil {
		return buf, nil
	}

	unity := &AudioConfig{SfxVolume: 1}
	s, err := newSoundEffect(st, unity, c.rate)
	if err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  c.rate,
		NumChannels: constant.AudioChannels,
		Precision:   constant.AudioBitDepth / 8,
	})
	buf.Append(s)
	c.store[st] = buf
	return buf, nil
}

// preload renders the most frequent effect ahead of the first shot
func (c *soundCache) preload() {
	c.get(SoundShoot)
}
