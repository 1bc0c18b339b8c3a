package fix

import (
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

var (
	// ErrClosed is returned for edits or commits on a committed or aborted changeset.
	ErrClosed = errors.New("changeset is closed")
	// ErrEmpty is returned when committing a changeset without edits.
	ErrEmpty = errors.New("changeset has no edits")
	// ErrOutOfRange is returned when an edit targets a token outside the stream.
	ErrOutOfRange = errors.New("edit targets a token outside the stream")
)

// Option mutates a fix during Commit.
type Option func(*diag.Fix)

// WithApplicability overrides the default AlwaysSafe applicability.
func WithApplicability(app diag.Applicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithID sets a stable identifier for the fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

// Changeset collects the token edits of one rule invocation.
// Edits are kept in queue order. The first failing edit is latched and
// returned by Commit, so rules can chain edits without checking each one.
type Changeset struct {
	stream *token.Stream
	title  string
	edits  []diag.TokenEdit
	closed bool
	err    error
}

// Begin opens a changeset against stream.
func Begin(stream *token.Stream, title string) *Changeset {
	return &Changeset{stream: stream, title: title}
}

func (c *Changeset) Replace(idx int, text string) *Changeset {
	return c.add(idx, diag.EditReplace, text)
}

func (c *Changeset) InsertBefore(idx int, text string) *Changeset {
	return c.add(idx, diag.EditInsertBefore, text)
}

func (c *Changeset) InsertAfter(idx int, text string) *Changeset {
	return c.add(idx, diag.EditInsertAfter, text)
}

func (c *Changeset) Delete(idx int) *Changeset {
	return c.add(idx, diag.EditDelete, "")
}

func (c *Changeset) add(idx int, op diag.EditOp, text string) *Changeset {
	if c.err != nil {
		return c
	}
	if c.closed {
		c.err = ErrClosed
		return c
	}
	if idx < 0 || idx >= c.stream.Len() {
		c.err = errors.Errorf("%w: token %d of %d", ErrOutOfRange, idx, c.stream.Len())
		return c
	}
	c.edits = append(c.edits, diag.TokenEdit{Token: idx, Op: op, Text: text})
	return c
}

// Len returns the number of queued edits.
func (c *Changeset) Len() int { return len(c.edits) }

// Err returns the latched edit error, if any.
func (c *Changeset) Err() error { return c.err }

// Closed reports whether Commit or Abort has been called.
func (c *Changeset) Closed() bool { return c.closed }

// Commit closes the changeset and returns it as a fix.
func (c *Changeset) Commit(opts ...Option) (diag.Fix, error) {
	if c.closed {
		return diag.Fix{}, ErrClosed
	}
	c.closed = true
	if c.err != nil {
		return diag.Fix{}, c.err
	}
	if len(c.edits) == 0 {
		return diag.Fix{}, ErrEmpty
	}
	f := diag.Fix{
		Title:         c.title,
		Applicability: diag.AlwaysSafe,
		Edits:         c.edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	c.edits = nil
	return f, nil
}

// Abort discards the queued edits and closes the changeset.
func (c *Changeset) Abort() {
	c.closed = true
	c.edits = nil
}
