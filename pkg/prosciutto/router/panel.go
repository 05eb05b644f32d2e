package router

import (
	"time"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/tween"
)

// Panel is the reusable part of a Screen: identity, visibility, an optional
// fade driven by a tween.Animator, and lifecycle hooks. Concrete screens embed
// a *Panel and set the hooks they need.
//
// Visible flips as soon as Show or Hide is called; Alpha trails behind while
// the fade runs.
type Panel struct {
	kind        Kind
	id          uuid.UUID
	visible     bool
	initialized bool
	alpha       float64

	animator     *tween.Animator
	showDuration time.Duration
	hideDuration time.Duration
	ease         tween.Ease
	transition   *tween.Handle

	OnInitialize func()
	OnClean      func()
	OnRefresh    func()
	OnShow       func()
	OnHide       func()
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithFade animates alpha on Show and Hide using animator.
func WithFade(animator *tween.Animator, show, hide time.Duration, ease tween.Ease) PanelOption {
	return func(p *Panel) {
		p.animator = animator
		p.showDuration = show
		p.hideDuration = hide
		p.ease = ease
	}
}

// NewPanel creates a hidden panel of the given kind.
func NewPanel(kind Kind, opts ...PanelOption) *Panel {
	p := &Panel{
		kind: kind,
		id:   uuid.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Panel) Kind() Kind { return p.kind }

// ID distinguishes panel instances in logs.
func (p *Panel) ID() uuid.UUID { return p.id }

func (p *Panel) Visible() bool { return p.visible }

// Alpha is the current opacity in [0,1].
func (p *Panel) Alpha() float64 { return p.alpha }

// Initialized reports whether Initialize has run since the last Clean.
func (p *Panel) Initialized() bool { return p.initialized }

// Transition returns the running or last show/hide tween, or nil when the
// panel has no animator. Callers await it to know the fade has finished.
func (p *Panel) Transition() *tween.Handle { return p.transition }

func (p *Panel) Initialize() {
	if p.initialized {
		return
	}
	p.initialized = true
	if p.OnInitialize != nil {
		p.OnInitialize()
	}
}

func (p *Panel) Clean() {
	p.stopTransition()
	p.initialized = false
	if p.OnClean != nil {
		p.OnClean()
	}
}

func (p *Panel) Refresh() {
	if p.OnRefresh != nil {
		p.OnRefresh()
	}
}

func (p *Panel) Show() {
	p.visible = true
	p.fadeTo(1, p.showDuration)
	if p.OnShow != nil {
		p.OnShow()
	}
}

func (p *Panel) Hide() {
	if !p.visible && p.alpha == 0 {
		return
	}
	p.visible = false
	p.fadeTo(0, p.hideDuration)
	if p.OnHide != nil {
		p.OnHide()
	}
}

func (p *Panel) fadeTo(target float64, duration time.Duration) {
	p.stopTransition()
	if p.animator == nil {
		p.alpha = target
		return
	}
	p.transition = p.animator.To(p.alpha, target, duration, p.ease, func(v float64) {
		p.alpha = v
	})
}

func (p *Panel) stopTransition() {
	if p.transition != nil {
		p.transition.Cancel()
	}
}
