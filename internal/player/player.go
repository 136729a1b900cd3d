// Package player manages audio playback.
package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/jansuchomel/cadence/internal/fsbrowser"
)

// Status is a snapshot of playback state.
type Status struct {
	Current   time.Duration
	Total     time.Duration
	IsPlaying bool
}

// Player decodes and plays one stream at a time.
type Player struct {
	progressChan chan Status
	doneChan     chan bool

	ctx           context.Context
	cancel        context.CancelFunc
	mutex         sync.RWMutex
	isInitialized bool
	isPaused      bool
	currentURL    string

	streamer beep.StreamSeekCloser
	source   io.Closer
	ctrl     *beep.Ctrl
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan bool, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Progress returns the channel carrying playback status updates.
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done returns the channel signalled when a track finishes on its own.
func (p *Player) Done() <-chan bool {
	return p.doneChan
}

// Play starts playing the given URL, stopping any current track first.
// Local file URLs and plain paths are read from disk; http(s) URLs are
// streamed.
func (p *Player) Play(url string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.stopInternal()

	source, err := openSource(p.ctx, url)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(source)
	if err != nil {
		source.Close()
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	p.streamer = streamer
	p.source = source
	p.currentURL = url

	// The speaker can only be initialized once per process.
	if !p.isInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			p.stopInternal()
			return fmt.Errorf("initializing speaker: %w", err)
		}
		p.isInitialized = true
	}

	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.isPaused = false

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case p.doneChan <- true:
		default:
		}
	})))

	go p.monitorProgress(format)

	return nil
}

// Pause toggles between paused and playing.
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.isPaused = !p.isPaused
		p.ctrl.Paused = p.isPaused
		speaker.Unlock()
	}
}

// Stop halts playback and releases the current stream.
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal must be called with the mutex held.
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.source != nil {
		p.source.Close()
		p.source = nil
	}
	p.currentURL = ""
	p.isPaused = false
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// IsPlaying reports whether a track is actively playing.
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentURL returns the URL of the loaded track, if any.
func (p *Player) CurrentURL() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.currentURL
}

func (p *Player) monitorProgress(format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()
			if p.streamer == nil || p.ctrl == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			current := format.SampleRate.D(p.streamer.Position())
			total := format.SampleRate.D(p.streamer.Len())
			paused := p.isPaused
			speaker.Unlock()
			p.mutex.RUnlock()

			select {
			case p.progressChan <- Status{Current: current, Total: total, IsPlaying: !paused}:
			default:
			}
		}
	}
}

// openSource resolves a URL or path into a readable stream.
func openSource(ctx context.Context, url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("opening stream %s: %w", url, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("opening stream %s: status %d", url, resp.StatusCode)
		}
		return resp.Body, nil
	case strings.HasPrefix(url, "file://"):
		return os.Open(fsbrowser.LocalPath(url))
	default:
		return os.Open(url)
	}
}
