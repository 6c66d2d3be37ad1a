package parser

// Line Buffer Capacity Constants
const (
	// MaxGcodesPerLine is the number of commands one logical line can hold.
	// Overflowing commands are reported through the observer and dropped.
	MaxGcodesPerLine = 6

	// MaxArgsPerGcode is the number of argument words one command can hold.
	MaxArgsPerGcode = 12

	// MaxCommentsPerLine is the number of comments one logical line can hold.
	MaxCommentsPerLine = 3
)
