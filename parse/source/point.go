package source

// point is a restore point whose rollback is supplied by the input that
// created it.
type point struct {
	restore  func()
	open     *int
	released bool
}

func newPoint(restore func(), open *int) *point {
	*open++
	return &point{restore: restore, open: open}
}

func (p *point) Restore() {
	p.restore()
}

func (p *point) Release() {
	if p.released {
		return
	}
	p.released = true
	*p.open--
}
