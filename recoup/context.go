// recoup project context.go
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package recoup

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Everything a single simulation run carries with it. Runs never share one.
type Context struct {
	RunID uuid.UUID
	Log   *zap.Logger

	base *zap.Logger // sink without the run field
}

func NewContext(log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Context{RunID: id, Log: log.With(zap.String("run", id.String())), base: log}
}

// A new run id logging through the same sink
func (c *Context) Child() *Context {
	if c == nil || c.base == nil {
		return NewContext(c.logger())
	}
	return NewContext(c.base)
}

func (c *Context) logger() *zap.Logger {
	if c == nil || c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
