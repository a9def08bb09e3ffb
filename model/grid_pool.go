package model

import "sync"

// BoardPool recycles boards between generations so a running loop does not
// allocate a fresh grid on every step.
type BoardPool struct {
	pool sync.Pool
}

func NewBoardPool() *BoardPool {
	return &BoardPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Board{}
			},
		},
	}
}

// Get retrieves a board from the pool, resized and cleared to rows x cols
func (p *BoardPool) Get(rows, cols int) *Board {
	if p == nil {
		return MakeEmpty(rows, cols)
	}
	b := p.pool.Get().(*Board)
	b.Reset(rows, cols)
	return b
}

// Put hands a board back to the pool. The caller must not touch it afterwards.
func (p *BoardPool) Put(b *Board) {
	if p == nil || b == nil {
		return
	}
	p.pool.Put(b)
}
