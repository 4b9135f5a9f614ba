package runtime

import (
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/source"
)

// Flags record which enclosing constructs permit return, continue and break.
type Flags struct {
	InFunction bool
	InLoop     bool
	InSwitch   bool
}

// Context is one frame of the call chain.
type Context struct {
	Name    string
	Parent  *Context
	Entry   source.Position
	Symbols *SymbolTable
	Flags
}

// NewContext builds a frame. Entry is where control entered it from Parent.
func NewContext(name string, parent *Context, entry source.Position, symbols *SymbolTable) *Context {
	return &Context{Name: name, Parent: parent, Entry: entry, Symbols: symbols}
}

func (c *Context) FrameName() string { return c.Name }

func (c *Context) FrameParent() diag.Frame {
	if c.Parent == nil {
		return nil
	}
	return c.Parent
}

func (c *Context) EntryPosition() source.Position { return c.Entry }

// Frame returns c as a diag.Frame, or nil for a nil context.
func (c *Context) Frame() diag.Frame {
	if c == nil {
		return nil
	}
	return c
}

// Errorf builds a diagnostic attributed to this frame.
func (c *Context) Errorf(kind diag.Kind, span source.Span, format string, args ...any) *diag.Error {
	return diag.New(kind, span, format, args...).In(c.Frame())
}
