package parse

// Input is an ordered stream of tokens with a single cursor.
//
// Implementations must not advance the cursor from any method other than
// NextToken. NextToken and PeekToken panic with an *EndOfInputError when
// EndOfInput is true; combinators always check EndOfInput first.
type Input[T any] interface {
	// CurrentLine is the line of the next unread token.
	CurrentLine() int
	// CurrentColumn is the column of the next unread token.
	CurrentColumn() int
	// CurrentOffset is the implementation-defined offset of the next
	// unread token, increasing monotonically as tokens are consumed.
	CurrentOffset() int64
	// CurrentPosition is the position of the next unread token.
	CurrentPosition() Position
	// EndOfInput reports whether every token has been consumed.
	EndOfInput() bool
	// NextToken consumes the next token.
	NextToken() Located[T]
	// PeekToken returns the next token without consuming it.
	PeekToken() Located[T]
	// CreateRestorePoint captures the cursor so that any number of later
	// NextToken calls can be undone. It must cost the same regardless of
	// how much input has been consumed.
	CreateRestorePoint() RestorePoint
}

// RestorePoint is a snapshot of an Input's cursor.
//
// Restore resets the cursor to the snapshot. Release ends the snapshot's
// lifetime; it is idempotent and independent of whether Restore was ever
// called. The creator of a restore point releases it on every exit path,
// usually with defer.
type RestorePoint interface {
	Restore()
	Release()
}
