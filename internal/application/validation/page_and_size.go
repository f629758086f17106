package validation

// PageAndSize validates pagination parameters. Pages are 1-based; a zero
// size is a legal "no rows" request.
type PageAndSize struct{}

func (PageAndSize) Validate(page, size int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if size < 0 {
		return ErrInvalidSize
	}
	return nil
}
