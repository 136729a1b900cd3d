package podcasts

import "context"

// SourcePage is the contract every podcast discovery page implements.
// A page fills its discovery model in Search and reports long-running
// work through the busy notification.
type SourcePage interface {
	// Title names the page in the source list.
	Title() string

	// Model returns the page's discovery model. The model is owned by
	// the page and must not be replaced by callers.
	Model() *DiscoveryModel

	// HasVisibleWidget reports whether the page renders its own panel.
	HasVisibleWidget() bool

	// Show is invoked when the page becomes the active source.
	Show()

	// Search populates the model for the given query.
	Search(ctx context.Context, query string) error
}

// BasePage supplies the defaults shared by concrete pages: a visible
// widget, a no-op Show and busy-state observers. Concrete pages embed
// it and call SetModel once during construction.
type BasePage struct {
	model  *DiscoveryModel
	onBusy []func(bool)
}

// Model returns the page's discovery model.
func (p *BasePage) Model() *DiscoveryModel {
	return p.model
}

// SetModel installs the page's discovery model. Intended for use by the
// embedding page's constructor.
func (p *BasePage) SetModel(m *DiscoveryModel) {
	p.model = m
}

// HasVisibleWidget reports true unless the embedding page overrides it.
func (p *BasePage) HasVisibleWidget() bool {
	return true
}

// Show does nothing unless the embedding page overrides it.
func (p *BasePage) Show() {}

// OnBusy registers an observer for busy-state changes.
func (p *BasePage) OnBusy(fn func(bool)) {
	p.onBusy = append(p.onBusy, fn)
}

// NotifyBusy reports the start or end of long-running work.
func (p *BasePage) NotifyBusy(busy bool) {
	for _, fn := range p.onBusy {
		fn(busy)
	}
}
