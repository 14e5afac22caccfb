package ui

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v9/pkg/app"
)

const (
	phaseCount    = 3
	phaseInterval = 300 * time.Millisecond
	bounceRaise   = -8 // px applied to the sprite on the middle phase
)

// LoadingView is the animated placeholder shown while a page waits for
// data. A sprite bobs once per cycle while three dots light up in turn.
// It is purely decorative; the page owning it decides when it goes away.
type LoadingView struct {
	app.Compo

	Message string

	phase    int
	ticker   *time.Ticker
	stopTick chan bool
}

func (v *LoadingView) OnMount(ctx app.Context) {
	v.stopTick = make(chan bool)
	v.ticker = time.NewTicker(phaseInterval)
	go v.animate(v.ticker.C, func(apply func()) {
		ctx.Dispatch(func(ctx app.Context) {
			apply()
			v.Update()
		})
	})
}

// animate advances the phase once per tick until stopTick fires. run
// hands each mutation to the UI goroutine; after the loop returns the
// phase never moves again.
func (v *LoadingView) animate(ticks <-chan time.Time, run func(func())) {
	for {
		select {
		case <-ticks:
			run(v.advance)
		case <-v.stopTick:
			return
		}
	}
}

func (v *LoadingView) advance() {
	v.phase = (v.phase + 1) % phaseCount
}

func (v *LoadingView) OnDismount() {
	if v.ticker != nil {
		v.ticker.Stop()
		v.stopTick <- true
	}
}

func (v *LoadingView) spriteOffset() int {
	if v.phase == 1 {
		return bounceRaise
	}
	return 0
}

func (v *LoadingView) dotOpacity(i int) string {
	if i == v.phase {
		return "1.0"
	}
	return "0.3"
}

func (v *LoadingView) Render() app.UI {
	return app.Div().Class("loading-view").Body(
		app.Div().
			Class("loading-sprite").
			Style("transform", fmt.Sprintf("translateY(%dpx)", v.spriteOffset())).
			Body(
				app.Span().Class("material-symbols-rounded").Text("shield"),
			),
		app.Div().Class("loading-dots").Body(
			v.renderDot(0),
			v.renderDot(1),
			v.renderDot(2),
		),
		app.If(v.Message != "",
			app.Div().Class("loading-text").Text(v.Message),
		),
	)
}

func (v *LoadingView) renderDot(i int) app.UI {
	return app.Span().Class("loading-dot").Style("opacity", v.dotOpacity(i))
}
