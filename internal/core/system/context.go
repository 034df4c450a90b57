package system

import (
	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
)

// Context is what the runner hands to system constructors. Systems ask it
// for exactly the capabilities they need, a write-only sink or a read-only
// source on one scope, so no system can swap or clear a bus.
//
// Sinks and sources point at buses owned by the runner's Context; they are
// valid for as long as the runner is.
type Context struct {
	scopes   *event.Scopes
	commands *command.Buffer
	world    *ecs.World
}

func (c *Context) Commands() *command.Buffer { return c.commands }
func (c *Context) World() *ecs.World         { return c.world }

func PassSink[T any](c *Context) event.WriteSink[T]    { return event.SinkOf[T](c.scopes.Pass) }
func PassSource[T any](c *Context) event.ReadSource[T] { return event.SourceOf[T](c.scopes.Pass) }

func PhaseSink[T any](c *Context) event.WriteSink[T]    { return event.SinkOf[T](c.scopes.Phase) }
func PhaseSource[T any](c *Context) event.ReadSource[T] { return event.SourceOf[T](c.scopes.Phase) }

func FrameSink[T any](c *Context) event.WriteSink[T]    { return event.SinkOf[T](c.scopes.Frame) }
func FrameSource[T any](c *Context) event.ReadSource[T] { return event.SourceOf[T](c.scopes.Frame) }

// FrameBus exposes the frame bus itself for the dispatch system, which owns
// handler delivery for it.
func (c *Context) FrameBus() *event.Bus { return c.scopes.Frame }
