package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays a Driver through oto. It is an alternative to the portaudio
// Sink for systems without portaudio.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player
	driver *Driver
	mu     sync.Mutex
}

func NewOtoSink(d *Driver) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   d.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready
	s := &OtoSink{ctx: ctx, driver: d}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// Read renders float32 little endian samples into p. It is called by oto
// from its own goroutine.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(p) / 4
	for i := 0; i < n; i++ {
		v := float32(s.driver.Next()) * s.driver.gain
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return 4 * n, nil
}

func (s *OtoSink) Start() error {
	s.player.Play()
	return s.player.Err()
}

func (s *OtoSink) Stop() error {
	return s.player.Close()
}
