package ports

// URLOpener shows a web URL in the user's browser
type URLOpener interface {
	// Open launches the platform URL handler and returns without waiting
	Open(rawURL string) error
}
