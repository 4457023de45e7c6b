package port

// TextExtractor converts raw document bytes into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
