package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundBrake SoundKind = iota
	SoundHorn
)

// AudioSystem manages procedural sound effects.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

var sfxVolume float64 = 0.58

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundBrake:
		return genBrake()
	case SoundHorn:
		return genHorn()
	}
	return nil
}

// genBrake: descending squeal over filtered noise, fading to a soft thud.
func genBrake() []byte {
	n := int(0.30 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(24601)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.03, 0.25, 0.45, 0.35)
		// Squeal: high tone sliding down with a warble.
		freq := (1900 - 700*p) * (1 + 0.012*math.Sin(2*math.Pi*31*t))
		squeal := math.Sin(2*math.Pi*freq*t) * env * 0.26
		// Tyre scrub: heavily lowpassed noise.
		lp = lp*0.82 + lcg(&seed)*0.18
		scrub := lp * env * 0.22
		// Settle thud at the end.
		thud := fm(t, 85, 0.5, 1.0) * math.Exp(-(1-p)*40) * 0.30
		putStereoF32(buf, i, softSat(squeal+scrub+thud))
	}
	return buf
}

// genHorn: impatient double honk, two-tone horn stack.
func genHorn() []byte {
	n := int(0.55 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		// Two honks: 0.00-0.22 and 0.30-0.55.
		gate := 0.0
		var ht float64
		if t < 0.22 {
			gate = 1.0
			ht = t / 0.22
		} else if t >= 0.30 {
			gate = 1.0
			ht = (t - 0.30) / 0.25
		}
		if gate == 0 {
			putStereoF32(buf, i, 0)
			continue
		}
		env := adsr(ht, 0.06, 0.1, 0.85, 0.18) * gate
		// Classic two-note horn: roughly F4 + A4 with harmonics.
		s := math.Sin(2*math.Pi*349*t)*0.42 +
			math.Sin(2*math.Pi*440*t)*0.38 +
			math.Sin(2*math.Pi*698*t)*0.12 +
			math.Sin(2*math.Pi*880*t)*0.08
		putStereoF32(buf, i, softSat(s*env*0.62))
	}
	return buf
}
