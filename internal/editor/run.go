package editor

import (
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Run opens the edit window and blocks until it closes.
func (s *Screen) Run() error {
	var err error
	driver.Main(func(scr screen.Screen) { err = s.Main(scr) })
	return err
}

// Main runs the event loop on an existing shiny screen.
func (s *Screen) Main(scr screen.Screen) error {
	loadFonts()
	w, err := scr.NewWindow(&screen.NewWindowOptions{
		Width:  s.layout.Width,
		Height: s.layout.Height,
		Title:  "photocanvas",
	})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	var mu sync.Mutex
	released := false
	s.post = func(e any) {
		mu.Lock()
		defer mu.Unlock()
		if !released {
			w.Send(e)
		}
	}
	defer func() {
		mu.Lock()
		released = true
		mu.Unlock()
	}()

	frames := make(chan Frame, 1)
	painted := make(chan struct{})
	go func() {
		defer close(painted)
		for f := range frames {
			drawFrame(scr, w, f)
		}
	}()
	defer func() {
		close(frames)
		<-painted
	}()

	return s.loop(w, func(f Frame) {
		select {
		case frames <- f:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- f
		}
	})
}

// eventQueue is the part of screen.Window the event loop needs.
type eventQueue interface {
	NextEvent() interface{}
	Send(event interface{})
}

func (s *Screen) loop(q eventQueue, paintFrame func(Frame)) error {
	for {
		switch e := q.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return s.finish(q)
			}
		case size.Event:
			s.resize(e.WidthPx, e.HeightPx)
			q.Send(paint.Event{})
		case paint.Event:
			paintFrame(s.Frame())
		case mouse.Event:
			if s.handleMouse(e) {
				q.Send(paint.Event{})
			}
		case key.Event:
			if s.handleKey(e) {
				q.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		default:
			if s.handleEvent(e) {
				q.Send(paint.Event{})
			}
		}
		if s.closed {
			return s.finish(q)
		}
	}
}

// finish waits for saves still being written and applies their results
// before the screen goes away.
func (s *Screen) finish(q eventQueue) error {
	for s.pending > 0 {
		if d, ok := q.NextEvent().(saveDone); ok {
			s.finishSave(d)
		}
	}
	return s.Result()
}

func drawFrame(scr screen.Screen, w screen.Window, f Frame) {
	if f.Layout.Width <= 0 || f.Layout.Height <= 0 {
		return
	}
	b, err := scr.NewBuffer(image.Point{f.Layout.Width, f.Layout.Height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	RenderFrame(b.RGBA(), f)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
