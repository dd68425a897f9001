package host

// WindowEvent is a notification from the window layer
type WindowEvent interface {
	windowEvent()
}

// CloseRequested is delivered once, when the session ends
type CloseRequested struct {
	Reason string
}

// Focused reports a focus change
type Focused struct {
	Focused bool
}

// Resized reports new window dimensions
type Resized struct {
	Width  int
	Height int
}

func (CloseRequested) windowEvent() {}
func (Focused) windowEvent()        {}
func (Resized) windowEvent()        {}
