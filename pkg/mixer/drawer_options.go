package mixer

type Option func(d *Drawer)

// WithEffect applies e, in order, to every frame shown on all panels.
func WithEffect(e ...Effect) Option {
	return func(d *Drawer) {
		d.effs = e
	}
}
