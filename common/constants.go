package common

// Logical screen size. Layout scales this to the window.
const (
	BaseWidth  = 1920
	BaseHeight = 1080
)
