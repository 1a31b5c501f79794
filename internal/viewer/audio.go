package viewer

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem synthesizes the fire soundscape procedurally: short crackle
// pops while emitters run and a low whoosh on bursts.
type AudioSystem struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
}

func NewAudio() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{ctx: ctx, ready: ready, volume: 0.55}, nil
}

// PlayCrackle plays one short fire pop. Safe to call with a nil receiver so
// the viewer runs fine without audio.
func (a *AudioSystem) PlayCrackle(seed uint64) {
	a.play(genCrackle(seed), 1.0)
}

// PlayWhoosh plays the burst sound.
func (a *AudioSystem) PlayWhoosh() {
	a.play(genWhoosh(), 0.9)
}

func (a *AudioSystem) play(samples []byte, gain float64) {
	if a == nil || len(samples) == 0 {
		return
	}
	select {
	case <-a.ready:
	default:
		return // context still warming up; drop the sound
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume * gain)
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

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels.
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

func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1 << 30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// genCrackle: a short filtered-noise pop with a slow amplitude flutter.
// Seeding per call varies the timbre between pops.
func genCrackle(seed uint64) []byte {
	n := int(0.11 * sampleRate)
	buf := makeBuf(n)
	if seed == 0 {
		seed = 33333
	}
	lp := 0.0
	flutterHz := 14.0 + float64(seed%9)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		lp = lp*0.62 + raw*0.38
		mod := 0.5 + 0.5*math.Sin(2*math.Pi*flutterHz*t)
		env := (1 - p) * 0.34
		s := (raw*0.32 + lp*0.55) * mod * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genWhoosh: band-limited noise swelling then decaying, with a sub tone.
func genWhoosh() []byte {
	n := int(0.5 * sampleRate)
	buf := makeBuf(n)
	seed := uint64(time.Now().UnixNano())
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		// Swell in over the first quarter, decay after.
		env := p / 0.25
		if env > 1 {
			env = math.Exp(-(p - 0.25) * 4.2)
		}

		raw := lcg(&seed)
		lp1 = lp1*0.82 + raw*0.18
		lp2 = lp2*0.965 + raw*0.035
		body := (lp1 - lp2) * 0.55

		subFreq := 90.0 - 45.0*p
		subPhase += 2 * math.Pi * subFreq / sampleRate
		sub := math.Sin(subPhase) * 0.28

		putStereoF32(buf, i, softSat((body+sub)*env*0.8))
	}
	return buf
}
