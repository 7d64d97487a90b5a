package powlog

import (
	"io"
	"sync"
)

// Format renders a Record as a line of output.
type Format interface {
	Format(r *Record) []byte
}

type streamHandler struct {
	mu  sync.Mutex
	wr  io.Writer
	fmt Format
}

// StreamHandler writes formatted records to wr, serialized by a mutex since
// the orchestrator and the miner's logger children share one root handler.
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	return &streamHandler{wr: wr, fmt: fmtr}
}

func (h *streamHandler) Log(r *Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.wr.Write(h.fmt.Format(r))
	return err
}

// LvlFilterHandler drops records below the given level before passing the
// rest to next.
func LvlFilterHandler(maxLvl Lvl, next Handler) Handler {
	return &lvlFilterHandler{maxLvl: maxLvl, next: next}
}

type lvlFilterHandler struct {
	maxLvl Lvl
	next   Handler
}

func (h *lvlFilterHandler) Log(r *Record) error {
	if r.Lvl > h.maxLvl {
		return nil
	}
	return h.next.Log(r)
}

// MultiHandler fans a record out to every handler in hs.
func MultiHandler(hs ...Handler) Handler {
	return &multiHandler{hs: hs}
}

type multiHandler struct {
	hs []Handler
}

func (h *multiHandler) Log(r *Record) error {
	var firstErr error
	for _, inner := range h.hs {
		if err := inner.Log(r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
