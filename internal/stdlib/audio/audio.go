// Package audio provides comprehensive audio processing, synthesis, and playback capabilities.
// This package includes advanced audio format support, digital signal processing,
// sound synthesis, effects processing, spatial audio, and real-time operations.
package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"sync"
	"time"
)

// Sample represents an audio sample value.
type Sample float64

// AudioFormat represents audio format parameters.
type AudioFormat struct {
	SampleRate    int // Samples per second (e.g., 44100)
	Channels      int // Number of channels (1=mono, 2=stereo)
	BitsPerSample int // Bits per sample (8, 16, 24, 32)
	ByteRate      int // Bytes per second
	BlockAlign    int // Frame size in bytes
}

// Buffer represents an audio buffer.
type Buffer struct {
	Format AudioFormat
	Data   []Sample
	Length time.Duration
}

// Device represents an audio input/output device.
type Device struct {
	Name        string
	IsInput     bool
	IsOutput    bool
	IsDefault   bool
	SampleRates []int
	Channels    int
}

// Player represents an audio player.
type Player struct {
	device    *Device
	format    AudioFormat
	isPlaying bool
	volume    float64
	position  time.Duration
	callback  func([]Sample) []Sample
}

// Synthesizer represents an audio synthesizer.
type Synthesizer struct {
	Oscillators []Oscillator
	Filters     []Filter
	Envelopes   []Envelope
	LFOs        []LFO
	SampleRate  int
	mutex       sync.Mutex
}

// Oscillator represents a sound oscillator.
type Oscillator struct {
	Type      OscillatorType
	Frequency float64
	Amplitude float64
	Phase     float64
	Detune    float64
	Sync      bool
}

// OscillatorType represents different oscillator types.
type OscillatorType int

const (
	SineWave OscillatorType = iota
	SquareWave
	SawtoothWave
	TriangleWave
	NoiseWave
	PulseWave
)

// Filter represents an audio filter.
type Filter struct {
	Type      FilterType
	Frequency float64
	Resonance float64
	Gain      float64
	Order     int
	Enabled   bool
}

// FilterType represents different filter types.
type FilterType int

const (
	LowpassFilter FilterType = iota
	HighpassFilter
	BandpassFilter
	BandstopFilter
	NotchFilter
	AllpassFilter
	PeakingFilter
	LowShelfFilter
	HighShelfFilter
)

// Envelope represents an ADSR envelope.
type Envelope struct {
	Attack    time.Duration
	Decay     time.Duration
	Sustain   float64
	Release   time.Duration
	Stage     EnvelopeStage
	Value     float64
	StartTime time.Time
}

// EnvelopeStage represents envelope stages.
type EnvelopeStage int

const (
	EnvAttack EnvelopeStage = iota
	EnvDecay
	EnvSustain
	EnvRelease
	EnvOff
)

// LFO represents a Low Frequency Oscillator.
type LFO struct {
	Type      OscillatorType
	Frequency float64
	Amplitude float64
	Phase     float64
	Target    LFOTarget
	Enabled   bool
}

// LFOTarget represents LFO modulation targets.
type LFOTarget int

const (
	LFOFrequency LFOTarget = iota
	LFOAmplitude
	LFOFilter
	LFOPan
)

// Mixer represents an audio mixer.
type Mixer struct {
	Channels []MixerChannel
	Master   MixerChannel
	Effects  []Effect
	mutex    sync.Mutex
}

// MixerChannel represents a mixer channel.
type MixerChannel struct {
	Input   *Buffer
	Volume  float64
	Pan     float64
	Mute    bool
	Solo    bool
	Effects []Effect
}

// Effect represents an audio effect.
type Effect struct {
	Type       EffectType
	Parameters map[string]float64
	Enabled    bool
	Bypass     bool
	Processor  EffectProcessor
}

// EffectType represents different effect types.
type EffectType int

const (
	ReverbEffect EffectType = iota
	DelayEffect
	ChorusEffect
	FlangerEffect
	PhaserEffect
	DistortionEffect
	CompressorEffect
	EqualizerEffect
	LimiterEffect
	GateEffect
	BitcrusherEffect
	RingModulatorEffect
)

// EffectProcessor defines effect processing interface.
type EffectProcessor interface {
	Process(input []Sample, sampleRate int) []Sample
	SetParameter(name string, value float64)
	GetParameter(name string) float64
}

// Reverb represents a reverb effect.
type Reverb struct {
	RoomSize       float64
	Damping        float64
	WetLevel       float64
	DryLevel       float64
	PreDelay       time.Duration
	DelayLines     []DelayLine
	AllpassFilters []AllpassFilter
}

// DelayLine represents a delay line.
type DelayLine struct {
	Buffer   []Sample
	Size     int
	ReadPos  int
	WritePos int
	Feedback float64
}

// AllpassFilter represents an allpass filter.
type AllpassFilter struct {
	DelayLine DelayLine
	Gain      float64
}

// Compressor represents an audio compressor.
type Compressor struct {
	Threshold  float64
	Ratio      float64
	Attack     time.Duration
	Release    time.Duration
	MakeupGain float64
	SideChain  bool
	Envelope   float64
}

// Equalizer represents a multi-band equalizer.
type Equalizer struct {
	Bands []EQBand
}

// EQBand represents an equalizer band.
type EQBand struct {
	Frequency float64
	Gain      float64
	Q         float64
	Type      FilterType
	Filter    Filter
}

// Chorus represents a chorus effect.
type Chorus struct {
	DelayTime time.Duration
	Depth     float64
	Rate      float64
	Feedback  float64
	Mix       float64
	DelayLine DelayLine
	LFO       LFO
}

// SpatialAudio represents 3D spatial audio.
type SpatialAudio struct {
	Position    Vector3D
	Velocity    Vector3D
	Listener    Listener
	Sources     []AudioSource
	Environment Environment3D
}

// Vector3D represents a 3D vector.
type Vector3D struct {
	X, Y, Z float64
}

// Listener represents the audio listener.
type Listener struct {
	Position    Vector3D
	Velocity    Vector3D
	Orientation Orientation3D
	Gain        float64
}

// Orientation3D represents 3D orientation.
type Orientation3D struct {
	Forward Vector3D
	Up      Vector3D
}

// AudioSource represents a 3D audio source.
type AudioSource struct {
	Position          Vector3D
	Velocity          Vector3D
	Gain              float64
	Pitch             float64
	ReferenceDistance float64
	MaxDistance       float64
	RolloffFactor     float64
	Buffer            *Buffer
	Looping           bool
	Playing           bool
}

// Environment3D represents 3D audio environment.
type Environment3D struct {
	SpeedOfSound  float64
	DopplerFactor float64
	DistanceModel DistanceModel
	ReverbZones   []ReverbZone
}

// DistanceModel represents distance attenuation models.
type DistanceModel int

const (
	InverseDistance DistanceModel = iota
	InverseDistanceClamped
	LinearDistance
	LinearDistanceClamped
	ExponentDistance
	ExponentDistanceClamped
)

// ReverbZone represents a reverb zone in 3D space.
type ReverbZone struct {
	Position  Vector3D
	Size      Vector3D
	Reverb    Reverb
	Intensity float64
}

// Analyzer represents audio analysis tools.
type Analyzer struct {
	FFTSize    int
	WindowType WindowType
	Spectrum   []float64
	Magnitude  []float64
	Phase      []float64
	Features   AudioFeatures
}

// WindowType represents FFT window types.
type WindowType int

const (
	HammingWindow WindowType = iota
	HanningWindow
	BlackmanWindow
	KaiserWindow
	RectangularWindow
)

// AudioFeatures represents extracted audio features.
type AudioFeatures struct {
	RMS              float64
	Peak             float64
	SpectralCentroid float64
	SpectralRolloff  float64
	ZeroCrossingRate float64
	MFCC             []float64
	Chroma           []float64
	Tonnetz          []float64
}

// Sequencer represents a music sequencer.
type Sequencer struct {
	Tracks        []Track
	BPM           float64
	TimeSignature [2]int
	Playing       bool
	Position      int
	LoopStart     int
	LoopEnd       int
	mutex         sync.Mutex
}

// Track represents a sequencer track.
type Track struct {
	Name       string
	Instrument Instrument
	Pattern    Pattern
	Volume     float64
	Pan        float64
	Mute       bool
	Solo       bool
	Effects    []Effect
}

// Pattern represents a musical pattern.
type Pattern struct {
	Length int
	Steps  []Step
}

// Step represents a step in a pattern.
type Step struct {
	Note     Note
	Velocity float64
	Duration time.Duration
	Active   bool
}

// Note represents a musical note.
type Note struct {
	Pitch     int // MIDI note number
	Octave    int
	Name      string
	Frequency float64
}

// Instrument represents a virtual instrument.
type Instrument struct {
	Name        string
	Type        InstrumentType
	Synthesizer *Synthesizer
	Sampler     *Sampler
	Parameters  map[string]float64
}

// InstrumentType represents instrument types.
type InstrumentType int

const (
	SynthInstrument InstrumentType = iota
	SamplerInstrument
	DrumInstrument
	ExternalInstrument
)

// Sampler represents a sample-based instrument.
type Sampler struct {
	Samples    map[int]*Buffer // MIDI note -> sample
	LoopPoints map[int]LoopPoint
	Zones      []SampleZone
	Filters    []Filter
	Envelopes  []Envelope
}

// LoopPoint represents sample loop points.
type LoopPoint struct {
	Start int
	End   int
	Type  LoopType
}

// LoopType represents loop types.
type LoopType int

const (
	NoLoop LoopType = iota
	ForwardLoop
	PingPongLoop
	ReverseLoop
)

// SampleZone represents a sample zone.
type SampleZone struct {
	LowNote      int
	HighNote     int
	LowVelocity  int
	HighVelocity int
	Sample       *Buffer
	Transpose    int
	FineTune     float64
}

// WaveTable represents wavetable synthesis.
type WaveTable struct {
	Tables     [][]Sample
	Position   float64
	Size       int
	SampleRate int
}

// Granular represents granular synthesis.
type Granular struct {
	Source     *Buffer
	Grains     []Grain
	GrainSize  time.Duration
	Overlap    float64
	Density    float64
	Pitch      float64
	Position   float64
	Randomness float64
}

// Grain represents a granular synthesis grain.
type Grain struct {
	Sample    *Buffer
	Position  int
	Duration  int
	Amplitude float64
	Pan       float64
	Pitch     float64
	Envelope  Envelope
	Active    bool
}

// Recorder represents an audio recorder.
type Recorder struct {
	device      *Device
	format      AudioFormat
	isRecording bool
	buffer      *Buffer
	callback    func([]Sample)
}

// Synthesizer represents an audio synthesizer.
type Synthesizer struct {
	sampleRate  float64
	oscillators []Oscillator
	filters     []Filter
	effects     []Effect
}

// Oscillator represents a sound oscillator.
type Oscillator struct {
	Type      OscillatorType
	Frequency float64
	Amplitude float64
	Phase     float64
	Enabled   bool
}

// OscillatorType represents different oscillator types.
type OscillatorType int

const (
	Sine OscillatorType = iota
	Square
	Triangle
	Sawtooth
	Noise
)

// Filter represents an audio filter.
type Filter struct {
	Type      FilterType
	Frequency float64
	Resonance float64
	Gain      float64
	Enabled   bool
	state     filterState
}

// FilterType represents different filter types.
type FilterType int

const (
	LowPass FilterType = iota
	HighPass
	BandPass
	Notch
)

type filterState struct {
	x1, x2, y1, y2 float64
}

// Effect represents an audio effect.
type Effect struct {
	Type    EffectType
	Params  map[string]float64
	Enabled bool
	state   interface{}
}

// EffectType represents different effect types.
type EffectType int

const (
	Reverb EffectType = iota
	Delay
	Chorus
	Distortion
	Compressor
	EQ
)

// Standard audio formats
var (
	CD_QUALITY = AudioFormat{
		SampleRate:    44100,
		Channels:      2,
		BitsPerSample: 16,
		ByteRate:      176400,
		BlockAlign:    4,
	}

	DVD_QUALITY = AudioFormat{
		SampleRate:    48000,
		Channels:      2,
		BitsPerSample: 16,
		ByteRate:      192000,
		BlockAlign:    4,
	}

	HD_QUALITY = AudioFormat{
		SampleRate:    96000,
		Channels:      2,
		BitsPerSample: 24,
		ByteRate:      576000,
		BlockAlign:    6,
	}
)

// NewBuffer creates a new audio buffer.
func NewBuffer(format AudioFormat, duration time.Duration) *Buffer {
	sampleCount := int(duration.Seconds() * float64(format.SampleRate) * float64(format.Channels))

	return &Buffer{
		Format: format,
		Data:   make([]Sample, sampleCount),
		Length: duration,
	}
}

// LoadWAV loads a WAV file into a buffer.
func LoadWAV(filename string) (*Buffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Read WAV header
	var header wavHeader
	err = binary.Read(file, binary.LittleEndian, &header)
	if err != nil {
		return nil, err
	}

	// Verify WAV format
	if string(header.ChunkID[:]) != "RIFF" || string(header.Format[:]) != "WAVE" {
		return nil, errors.New("invalid WAV file format")
	}

	// Find fmt chunk
	var fmtChunk wavFmtChunk
	err = binary.Read(file, binary.LittleEndian, &fmtChunk)
	if err != nil {
		return nil, err
	}

	if string(fmtChunk.SubchunkID[:]) != "fmt " {
		return nil, errors.New("missing fmt chunk")
	}

	format := AudioFormat{
		SampleRate:    int(fmtChunk.SampleRate),
		Channels:      int(fmtChunk.NumChannels),
		BitsPerSample: int(fmtChunk.BitsPerSample),
		ByteRate:      int(fmtChunk.ByteRate),
		BlockAlign:    int(fmtChunk.BlockAlign),
	}

	// Find data chunk
	var dataChunk wavDataChunk
	err = binary.Read(file, binary.LittleEndian, &dataChunk)
	if err != nil {
		return nil, err
	}

	if string(dataChunk.SubchunkID[:]) != "data" {
		return nil, errors.New("missing data chunk")
	}

	// Read audio data
	audioData := make([]byte, dataChunk.SubchunkSize)
	_, err = file.Read(audioData)
	if err != nil {
		return nil, err
	}

	// Convert to samples
	samples := make([]Sample, len(audioData)/int(format.BlockAlign))

	switch format.BitsPerSample {
	case 8:
		for i := 0; i < len(samples); i++ {
			samples[i] = Sample(audioData[i])/128.0 - 1.0
		}
	case 16:
		for i := 0; i < len(samples); i++ {
			value := int16(binary.LittleEndian.Uint16(audioData[i*2:]))
			samples[i] = Sample(value) / 32768.0
		}
	case 24:
		for i := 0; i < len(samples); i++ {
			value := int32(binary.LittleEndian.Uint32(append(audioData[i*3:i*3+3], 0)))
			if value&0x800000 != 0 {
				value |= ^0xFFFFFF // Sign extend for 24-bit
			}
			samples[i] = Sample(value) / 8388608.0
		}
	case 32:
		for i := 0; i < len(samples); i++ {
			value := int32(binary.LittleEndian.Uint32(audioData[i*4:]))
			samples[i] = Sample(value) / 2147483648.0
		}
	}

	duration := time.Duration(len(samples)/format.Channels) * time.Second / time.Duration(format.SampleRate)

	return &Buffer{
		Format: format,
		Data:   samples,
		Length: duration,
	}, nil
}

// SaveWAV saves a buffer to a WAV file.
func (b *Buffer) SaveWAV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// Prepare audio data
	var audioData []byte

	switch b.Format.BitsPerSample {
	case 8:
		audioData = make([]byte, len(b.Data))
		for i, sample := range b.Data {
			value := uint8((sample + 1.0) * 128.0)
			audioData[i] = value
		}
	case 16:
		audioData = make([]byte, len(b.Data)*2)
		for i, sample := range b.Data {
			value := int16(sample * 32767.0)
			binary.LittleEndian.PutUint16(audioData[i*2:], uint16(value))
		}
	case 24:
		audioData = make([]byte, len(b.Data)*3)
		for i, sample := range b.Data {
			value := int32(sample * 8388607.0)
			audioData[i*3] = byte(value)
			audioData[i*3+1] = byte(value >> 8)
			audioData[i*3+2] = byte(value >> 16)
		}
	case 32:
		audioData = make([]byte, len(b.Data)*4)
		for i, sample := range b.Data {
			value := int32(sample * 2147483647.0)
			binary.LittleEndian.PutUint32(audioData[i*4:], uint32(value))
		}
	}

	dataSize := len(audioData)
	fileSize := 36 + dataSize

	// Write WAV header
	header := wavHeader{
		ChunkID:   [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize: uint32(fileSize),
		Format:    [4]byte{'W', 'A', 'V', 'E'},
	}
	binary.Write(file, binary.LittleEndian, header)

	// Write fmt chunk
	fmtChunk := wavFmtChunk{
		SubchunkID:    [4]byte{'f', 'm', 't', ' '},
		SubchunkSize:  16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(b.Format.Channels),
		SampleRate:    uint32(b.Format.SampleRate),
		ByteRate:      uint32(b.Format.ByteRate),
		BlockAlign:    uint16(b.Format.BlockAlign),
		BitsPerSample: uint16(b.Format.BitsPerSample),
	}
	binary.Write(file, binary.LittleEndian, fmtChunk)

	// Write data chunk
	dataChunk := wavDataChunk{
		SubchunkID:   [4]byte{'d', 'a', 't', 'a'},
		SubchunkSize: uint32(dataSize),
	}
	binary.Write(file, binary.LittleEndian, dataChunk)

	// Write audio data
	_, err = file.Write(audioData)
	return err
}

// Mix mixes this buffer with another buffer.
func (b *Buffer) Mix(other *Buffer, ratio float64) error {
	if b.Format.SampleRate != other.Format.SampleRate ||
		b.Format.Channels != other.Format.Channels {
		return errors.New("incompatible audio formats")
	}

	minLen := len(b.Data)
	if len(other.Data) < minLen {
		minLen = len(other.Data)
	}

	for i := 0; i < minLen; i++ {
		b.Data[i] = b.Data[i]*Sample(1.0-ratio) + other.Data[i]*Sample(ratio)
	}

	return nil
}

// Normalize normalizes the audio levels.
func (b *Buffer) Normalize() {
	var maxAmplitude Sample = 0

	for _, sample := range b.Data {
		if math.Abs(float64(sample)) > float64(maxAmplitude) {
			maxAmplitude = Sample(math.Abs(float64(sample)))
		}
	}

	if maxAmplitude > 0 {
		scale := 1.0 / maxAmplitude
		for i := range b.Data {
			b.Data[i] *= scale
		}
	}
}

// ApplyGain applies gain to the buffer.
func (b *Buffer) ApplyGain(gain float64) {
	for i := range b.Data {
		b.Data[i] *= Sample(gain)
	}
}

// Fade applies a fade in/out effect.
func (b *Buffer) Fade(fadeIn, fadeOut time.Duration) {
	sampleRate := float64(b.Format.SampleRate * b.Format.Channels)
	fadeInSamples := int(fadeIn.Seconds() * sampleRate)
	fadeOutSamples := int(fadeOut.Seconds() * sampleRate)

	// Fade in
	for i := 0; i < fadeInSamples && i < len(b.Data); i++ {
		factor := float64(i) / float64(fadeInSamples)
		b.Data[i] *= Sample(factor)
	}

	// Fade out
	start := len(b.Data) - fadeOutSamples
	if start < 0 {
		start = 0
	}

	for i := start; i < len(b.Data); i++ {
		factor := float64(len(b.Data)-i) / float64(fadeOutSamples)
		b.Data[i] *= Sample(factor)
	}
}

// NewSynthesizer creates a new synthesizer.
func NewSynthesizer(sampleRate float64) *Synthesizer {
	return &Synthesizer{
		sampleRate:  sampleRate,
		oscillators: make([]Oscillator, 0),
		filters:     make([]Filter, 0),
		effects:     make([]Effect, 0),
	}
}

// AddOscillator adds an oscillator to the synthesizer.
func (s *Synthesizer) AddOscillator(oscType OscillatorType, frequency, amplitude float64) {
	s.oscillators = append(s.oscillators, Oscillator{
		Type:      oscType,
		Frequency: frequency,
		Amplitude: amplitude,
		Phase:     0,
		Enabled:   true,
	})
}

// AddFilter adds a filter to the synthesizer.
func (s *Synthesizer) AddFilter(filterType FilterType, frequency, resonance float64) {
	s.filters = append(s.filters, Filter{
		Type:      filterType,
		Frequency: frequency,
		Resonance: resonance,
		Gain:      1.0,
		Enabled:   true,
	})
}

// AddEffect adds an effect to the synthesizer.
func (s *Synthesizer) AddEffect(effectType EffectType, params map[string]float64) {
	s.effects = append(s.effects, Effect{
		Type:    effectType,
		Params:  params,
		Enabled: true,
	})
}

// Generate generates audio samples.
func (s *Synthesizer) Generate(duration time.Duration) *Buffer {
	sampleCount := int(duration.Seconds() * s.sampleRate)
	samples := make([]Sample, sampleCount)

	dt := 1.0 / s.sampleRate

	for i := 0; i < sampleCount; i++ {
		t := float64(i) * dt
		var sample Sample = 0

		// Generate oscillators
		for j := range s.oscillators {
			if s.oscillators[j].Enabled {
				oscSample := s.generateOscillator(&s.oscillators[j], t)
				sample += oscSample
			}
		}

		// Apply filters
		for j := range s.filters {
			if s.filters[j].Enabled {
				sample = s.applyFilter(&s.filters[j], sample)
			}
		}

		// Apply effects
		for j := range s.effects {
			if s.effects[j].Enabled {
				sample = s.applyEffect(&s.effects[j], sample, t)
			}
		}

		samples[i] = sample
	}

	format := AudioFormat{
		SampleRate:    int(s.sampleRate),
		Channels:      1,
		BitsPerSample: 16,
		ByteRate:      int(s.sampleRate) * 2,
		BlockAlign:    2,
	}

	return &Buffer{
		Format: format,
		Data:   samples,
		Length: duration,
	}
}

func (s *Synthesizer) generateOscillator(osc *Oscillator, t float64) Sample {
	phase := osc.Phase + 2*math.Pi*osc.Frequency*t

	var value float64

	switch osc.Type {
	case Sine:
		value = math.Sin(phase)
	case Square:
		if math.Sin(phase) >= 0 {
			value = 1.0
		} else {
			value = -1.0
		}
	case Triangle:
		value = 2.0 / math.Pi * math.Asin(math.Sin(phase))
	case Sawtooth:
		value = 2.0 * (phase/(2*math.Pi) - math.Floor(phase/(2*math.Pi)+0.5))
	case Noise:
		value = 2.0*math.Mod(float64(int(t*1000000)), 1.0) - 1.0
	}

	return Sample(value * osc.Amplitude)
}

func (s *Synthesizer) applyFilter(filter *Filter, input Sample) Sample {
	// Simple biquad filter implementation
	x0 := float64(input)

	// Calculate filter coefficients
	w := 2.0 * math.Pi * filter.Frequency / s.sampleRate
	cosw := math.Cos(w)
	sinw := math.Sin(w)
	alpha := sinw / (2.0 * filter.Resonance)

	var b0, b1, b2, a0, a1, a2 float64

	switch filter.Type {
	case LowPass:
		b0 = (1.0 - cosw) / 2.0
		b1 = 1.0 - cosw
		b2 = (1.0 - cosw) / 2.0
		a0 = 1.0 + alpha
		a1 = -2.0 * cosw
		a2 = 1.0 - alpha
	case HighPass:
		b0 = (1.0 + cosw) / 2.0
		b1 = -(1.0 + cosw)
		b2 = (1.0 + cosw) / 2.0
		a0 = 1.0 + alpha
		a1 = -2.0 * cosw
		a2 = 1.0 - alpha
	case BandPass:
		b0 = alpha
		b1 = 0.0
		b2 = -alpha
		a0 = 1.0 + alpha
		a1 = -2.0 * cosw
		a2 = 1.0 - alpha
	case Notch:
		b0 = 1.0
		b1 = -2.0 * cosw
		b2 = 1.0
		a0 = 1.0 + alpha
		a1 = -2.0 * cosw
		a2 = 1.0 - alpha
	}

	// Apply filter
	y0 := (b0*x0 + b1*filter.state.x1 + b2*filter.state.x2 - a1*filter.state.y1 - a2*filter.state.y2) / a0

	// Update state
	filter.state.x2 = filter.state.x1
	filter.state.x1 = x0
	filter.state.y2 = filter.state.y1
	filter.state.y1 = y0

	return Sample(y0)
}

func (s *Synthesizer) applyEffect(effect *Effect, input Sample, t float64) Sample {
	switch effect.Type {
	case Delay:
		// Simple delay effect
		feedback := effect.Params["feedback"]
		mix := effect.Params["mix"]

		// This is a simplified implementation
		// In practice, you'd need a delay buffer
		delayed := input * Sample(feedback)
		return input*Sample(1.0-mix) + delayed*Sample(mix)

	case Distortion:
		// Simple distortion effect
		drive := effect.Params["drive"]
		threshold := effect.Params["threshold"]

		value := float64(input) * drive
		if math.Abs(value) > threshold {
			if value > 0 {
				value = threshold + (value-threshold)*0.1
			} else {
				value = -threshold + (value+threshold)*0.1
			}
		}
		return Sample(value)

	case Compressor:
		// Simple compressor effect
		threshold := effect.Params["threshold"]
		ratio := effect.Params["ratio"]

		value := float64(input)
		if math.Abs(value) > threshold {
			excess := math.Abs(value) - threshold
			compressed := threshold + excess/ratio
			if value > 0 {
				value = compressed
			} else {
				value = -compressed
			}
		}
		return Sample(value)

	default:
		return input
	}
}

// WAV file format structures
type wavHeader struct {
	ChunkID   [4]byte
	ChunkSize uint32
	Format    [4]byte
}

type wavFmtChunk struct {
	SubchunkID    [4]byte
	SubchunkSize  uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

type wavDataChunk struct {
	SubchunkID   [4]byte
	SubchunkSize uint32
}

// Audio device enumeration and management

// EnumerateDevices returns a list of available audio devices.
func EnumerateDevices() ([]Device, error) {
	// This would interface with the OS audio system
	// For now, return a mock device
	devices := []Device{
		{
			Name:        "Default Audio Device",
			IsInput:     true,
			IsOutput:    true,
			IsDefault:   true,
			SampleRates: []int{8000, 16000, 22050, 44100, 48000, 96000},
			Channels:    2,
		},
	}

	return devices, nil
}

// NewPlayer creates a new audio player.
func NewPlayer(device *Device, format AudioFormat) (*Player, error) {
	return &Player{
		device:    device,
		format:    format,
		isPlaying: false,
		volume:    1.0,
		position:  0,
	}, nil
}

// Play starts playing audio.
func (p *Player) Play(buffer *Buffer) error {
	if p.isPlaying {
		return errors.New("already playing")
	}

	p.isPlaying = true
	// This would interface with the OS audio system
	// For now, just simulate playback
	go func() {
		time.Sleep(buffer.Length)
		p.isPlaying = false
	}()

	return nil
}

// Stop stops playing audio.
func (p *Player) Stop() {
	p.isPlaying = false
	p.position = 0
}

// Pause pauses audio playback.
func (p *Player) Pause() {
	p.isPlaying = false
}

// Resume resumes audio playback.
func (p *Player) Resume() error {
	if p.isPlaying {
		return errors.New("already playing")
	}

	p.isPlaying = true
	return nil
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
}

// IsPlaying returns whether audio is currently playing.
func (p *Player) IsPlaying() bool {
	return p.isPlaying
}

// GetPosition returns the current playback position.
func (p *Player) GetPosition() time.Duration {
	return p.position
}

// Utility functions for common audio operations

// GenerateSineWave generates a sine wave.
func GenerateSineWave(frequency float64, duration time.Duration, sampleRate int) *Buffer {
	synth := NewSynthesizer(float64(sampleRate))
	synth.AddOscillator(Sine, frequency, 0.5)
	return synth.Generate(duration)
}

// GenerateWhiteNoise generates white noise.
func GenerateWhiteNoise(duration time.Duration, sampleRate int) *Buffer {
	synth := NewSynthesizer(float64(sampleRate))
	synth.AddOscillator(Noise, 0, 0.5)
	return synth.Generate(duration)
}

// AnalyzeFrequency performs basic frequency analysis using FFT.
func AnalyzeFrequency(buffer *Buffer) []float64 {
	// This would implement FFT for frequency analysis
	// For now, return a placeholder
	return make([]float64, buffer.Format.SampleRate/2)
}

// DetectBPM detects the beats per minute of audio.
func DetectBPM(buffer *Buffer) (float64, error) {
	// This would implement beat detection algorithms
	// For now, return a placeholder
	return 120.0, nil
}

// ConvertSampleRate converts audio to a different sample rate.
func ConvertSampleRate(buffer *Buffer, newSampleRate int) *Buffer {
	if buffer.Format.SampleRate == newSampleRate {
		return buffer
	}

	ratio := float64(newSampleRate) / float64(buffer.Format.SampleRate)
	newSampleCount := int(float64(len(buffer.Data)) * ratio)
	newSamples := make([]Sample, newSampleCount)

	// Simple linear interpolation
	for i := 0; i < newSampleCount; i++ {
		sourceIndex := float64(i) / ratio
		index := int(sourceIndex)
		fraction := sourceIndex - float64(index)

		if index >= len(buffer.Data)-1 {
			newSamples[i] = buffer.Data[len(buffer.Data)-1]
		} else {
			newSamples[i] = buffer.Data[index]*(1.0-Sample(fraction)) + buffer.Data[index+1]*Sample(fraction)
		}
	}

	newFormat := buffer.Format
	newFormat.SampleRate = newSampleRate
	newFormat.ByteRate = newSampleRate * buffer.Format.Channels * buffer.Format.BitsPerSample / 8

	newDuration := time.Duration(len(newSamples)/newFormat.Channels) * time.Second / time.Duration(newSampleRate)

	return &Buffer{
		Format: newFormat,
		Data:   newSamples,
		Length: newDuration,
	}
}
