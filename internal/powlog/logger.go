// Package powlog is a small leveled logger, log15-style: a Logger carries
// a fixed context of key/value pairs, each call site adds its own, and
// records flow through a swappable Handler. Caller frames are captured
// with go-stack/stack.
package powlog

import (
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
)

// Lvl is a logging level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "crit"
	case LvlError:
		return "eror"
	case LvlWarn:
		return "warn"
	case LvlInfo:
		return "info"
	case LvlDebug:
		return "dbug"
	case LvlTrace:
		return "trce"
	default:
		return "unkn"
	}
}

// Record is one emitted log line.
type Record struct {
	Time  time.Time
	Lvl   Lvl
	Msg   string
	Ctx   []interface{}
	Call  stack.Call
}

// Handler processes a Record. Handlers are not expected to be safe for
// concurrent use unless documented otherwise; Logger adds no locking of its
// own, and StreamHandler serializes its writes with its own mutex.
type Handler interface {
	Log(r *Record) error
}

// Logger emits Records carrying a fixed context alongside per-call context.
type Logger interface {
	New(ctx ...interface{}) Logger
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

type swapHandler struct {
	handler Handler
}

func (s *swapHandler) Log(r *Record) error {
	return s.handler.Log(r)
}

// Root returns the root logger, writing to stderr in terminal format by
// default.
func Root() Logger {
	return root
}

var root = &logger{
	h: &swapHandler{handler: StreamHandler(colorable.NewColorable(os.Stderr), TerminalFormat())},
}

// New creates a freestanding logger rooted at the package root logger's
// handler, with the given context appended.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{
		ctx: append(append([]interface{}{}, l.ctx...), ctx...),
		h:   l.h,
	}
	return child
}

func (l *logger) SetHandler(h Handler) {
	l.h.handler = h
}

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  normalize(append(append([]interface{}{}, l.ctx...), ctx...)),
	}
	if lvl == LvlCrit {
		r.Call = stack.Caller(2)
	}
	_ = l.h.Log(r)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(LvlCrit, msg, ctx) }

// normalize ensures the context slice has an even number of elements,
// padding with a marker value otherwise — a malformed call site shouldn't
// panic the logger.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, fmt.Errorf("MISSING VALUE"))
	}
	return ctx
}
