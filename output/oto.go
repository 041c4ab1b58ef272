// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Oto plays audio through github.com/ebitengine/oto. One Oto owns one oto
// context; the context itself is process-wide in oto, so create a single Oto
// per output format and reuse it across playback sessions.
type Oto struct {
	ctx      *oto.Context
	channels int

	mtx    sync.Mutex // setup/control only, never on the pull path
	player *oto.Player
}

// NewOto opens an audio context for interleaved 16-bit little-endian PCM.
// quantumFrames sets the device buffer length, i.e. roughly how much audio
// the device requests per pull.
func NewOto(sampleRate, channels, quantumFrames int) (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Second * time.Duration(quantumFrames) / time.Duration(sampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio context: %w", err)
	}
	<-ready

	return &Oto{ctx: ctx, channels: channels}, nil
}

func (o *Oto) Attach(r io.Reader) error {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.player != nil {
		return ErrAlreadyAttached
	}

	o.player = o.ctx.NewPlayer(r)
	return nil
}

func (o *Oto) Play() {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.player != nil && !o.player.IsPlaying() {
		o.player.Play()
	}
}

func (o *Oto) Pause() {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.player != nil {
		o.player.Pause()
	}
}

func (o *Oto) Detach() error {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if o.player == nil {
		return nil
	}

	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}
	return nil
}
