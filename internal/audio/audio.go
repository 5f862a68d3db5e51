package audio

import (
	"math"
	"math/cmplx"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	maxVoices = 8
)

// Cue identifies one of the sandbox's sound presets.
type Cue int

const (
	CueSpawn Cue = iota
	CueCollision
)

// voice is one active cue rendering. Voices are recycled oldest-first when
// the pool is full.
type voice struct {
	active bool
	cue    Cue
	freq   float64
	phase  float64
	age    float64 // seconds since trigger
	dur    float64
}

// Engine synthesizes the sandbox audio: short procedural cues for spawn and
// collision events plus a slow ambient pad whose filter tracks the total
// kinetic energy of the live bodies. One Engine is constructed at process
// start and passed to whoever needs to request a cue.
type Engine struct {
	Stream *portaudio.Stream
	Active bool

	// Synthesis
	Time        float64
	FilterState [2]float64   // stereo LPF state
	DelayLine   [2][]float64 // stereo delay buffer
	DelayHead   int

	ComplexBuffer []complex128

	mu           sync.Mutex
	spectrum     [16]float64 // output bus meter, written by the stream callback
	voices       [maxVoices]voice
	totalEnergy  float64
	energySmooth float64
	rng          *rand.Rand
}

func NewEngine() *Engine {
	delayLen := int(float64(SampleRate) * 0.4)

	return &Engine{
		ComplexBuffer: make([]complex128, BufferSize),
		DelayLine:     [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		rng:           rand.New(rand.NewSource(1)),
	}
}

func (e *Engine) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, e.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	e.Stream = stream
	e.Active = true
	return nil
}

func (e *Engine) Stop() {
	if e.Stream != nil {
		e.Stream.Stop()
		e.Stream.Close()
		e.Stream = nil
	}
	portaudio.Terminate()
	e.Active = false
}

// Trigger schedules a cue. Safe to call from the frame loop while the
// audio callback runs; never blocks on audio I/O.
func (e *Engine) Trigger(c Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := -1
	oldest := -1.0
	for i := range e.voices {
		if !e.voices[i].active {
			slot = i
			break
		}
		if e.voices[i].age > oldest {
			oldest = e.voices[i].age
			slot = i
		}
	}

	v := voice{active: true, cue: c}
	switch c {
	case CueSpawn:
		// bright blip, slight random detune so rapid spawns don't stack
		v.freq = 520.0 * (1.0 + 0.08*(e.rng.Float64()-0.5))
		v.dur = 0.25
	case CueCollision:
		v.freq = 70.0
		v.dur = 0.8
	}
	e.voices[slot] = v
}

// UpdateEnergy feeds the pad engine the current total kinetic energy.
func (e *Engine) UpdateEnergy(ke float64) {
	e.mu.Lock()
	e.totalEnergy = ke
	e.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one pole low pass
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (e *Engine) renderVoice(v *voice, dt float64) float64 {
	if !v.active {
		return 0
	}

	v.age += dt
	if v.age >= v.dur {
		v.active = false
		return 0
	}

	// exponential decay envelope
	env := math.Exp(-5.0 * v.age / v.dur)

	var s float64
	switch v.cue {
	case CueSpawn:
		// pitch glides up over the blip
		f := v.freq * (1.0 + 0.5*v.age/v.dur)
		v.phase += f * dt
		s = triangle(v.phase) * env * 0.35
	case CueCollision:
		v.phase += v.freq * dt
		tone := triangle(v.phase)
		noise := e.rng.Float64()*2 - 1
		s = (0.6*tone + 0.4*noise) * env * 0.5
	}
	return s
}

func (e *Engine) Process(out [][]float32) {
	dt := 1.0 / float64(SampleRate)

	e.mu.Lock()
	targetEnergy := e.totalEnergy
	e.mu.Unlock()

	// slow morph so the pad never jumps
	pad := [5]float64{98.00, 116.54, 146.83, 174.61, 220.00}

	for i := 0; i < len(out[0]); i++ {
		e.energySmooth = e.energySmooth*0.9995 + targetEnergy*0.0005

		// energy opens the pad filter: 300Hz floor up to 1200Hz
		cutoff := 300.0 + math.Min(e.energySmooth*3.0, 900.0)

		sampleL := 0.0
		sampleR := 0.0

		for j, f := range pad {
			oscL := triangle(e.Time * (f * 0.999))
			oscR := triangle(e.Time * (f * 1.001))

			g := 1.0 / float64(len(pad))
			lfo := math.Sin(e.Time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo) * 0.3
			sampleR += oscR * g * (0.7 + 0.3*lfo) * 0.3
		}

		e.mu.Lock()
		for v := range e.voices {
			s := e.renderVoice(&e.voices[v], dt)
			sampleL += s
			sampleR += s
		}
		e.mu.Unlock()

		var outL, outR float64
		outL, e.FilterState[0] = lpf(sampleL, cutoff, dt, e.FilterState[0])
		outR, e.FilterState[1] = lpf(sampleR, cutoff, dt, e.FilterState[1])

		delayL := e.DelayLine[0][e.DelayHead]
		delayR := e.DelayLine[1][e.DelayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		e.DelayLine[0][e.DelayHead] = mixL * 0.6
		e.DelayLine[1][e.DelayHead] = mixR * 0.6

		e.DelayHead = (e.DelayHead + 1) % len(e.DelayLine[0])

		out[0][i] = float32(mixL * 0.5)
		out[1][i] = float32(mixR * 0.5)

		e.ComplexBuffer[i%BufferSize] = complex(mixL, 0)
		e.Time += dt
	}

	e.updateSpectrum()
}

// Spectrum returns a copy of the 16 band output meter. The meter itself is
// written on the stream callback thread, so HUD readers go through here.
func (e *Engine) Spectrum() [16]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spectrum
}

// updateSpectrum buckets an FFT of the last output block into 16 bands.
func (e *Engine) updateSpectrum() {
	spectrum := fft.FFT(e.ComplexBuffer)

	bands := len(e.spectrum)
	binsPerBand := (BufferSize / 2) / bands

	e.mu.Lock()
	defer e.mu.Unlock()
	for b := 0; b < bands; b++ {
		sum := 0.0
		for i := b * binsPerBand; i < (b+1)*binsPerBand; i++ {
			sum += cmplx.Abs(spectrum[i])
		}
		level := math.Min(sum/float64(binsPerBand)/8.0, 1.0)
		// smooth decay keeps the HUD bars from flickering
		e.spectrum[b] = math.Max(level, e.spectrum[b]*0.92)
	}
}
