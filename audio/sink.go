package audio

import (
	"github.com/gordonklaus/portaudio"
)

const bufferSize = 256

// Sink plays sources on the default portaudio output device.
type Sink struct {
	sources []Source
	stream  *portaudio.Stream
}

func NewSink(sampleRate int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	var s Sink
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), bufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return &s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Sink) AddSources(sources ...Source) {
	s.sources = append(s.sources, sources...)
}

// Process clears the buffer and lets every source add its signal to it.
func (s *Sink) Process(samples [][]float32) {
	for i := range samples {
		for j := range samples[i] {
			samples[i][j] = 0.
		}
	}
	for _, source := range s.sources {
		source.Process(samples)
	}
}
