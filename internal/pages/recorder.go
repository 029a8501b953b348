package pages

import "sync"

// Recorder is an in-memory Actions implementation that keeps commands in
// the order they were received.
type Recorder struct {
	mu        sync.Mutex
	pages     []Page
	redirects []Redirect
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreatePage(p Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, p)
	return nil
}

func (r *Recorder) CreateRedirect(rd Redirect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects = append(r.redirects, rd)
	return nil
}

// Pages returns a copy of the recorded pages.
func (r *Recorder) Pages() []Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Page(nil), r.pages...)
}

// Redirects returns a copy of the recorded redirects.
func (r *Recorder) Redirects() []Redirect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Redirect(nil), r.redirects...)
}

type multiActions []Actions

// Multi fans each command out to every target in order, stopping at the
// first error.
func Multi(targets ...Actions) Actions {
	return multiActions(targets)
}

func (m multiActions) CreatePage(p Page) error {
	for _, a := range m {
		if err := a.CreatePage(p); err != nil {
			return err
		}
	}
	return nil
}

func (m multiActions) CreateRedirect(r Redirect) error {
	for _, a := range m {
		if err := a.CreateRedirect(r); err != nil {
			return err
		}
	}
	return nil
}
