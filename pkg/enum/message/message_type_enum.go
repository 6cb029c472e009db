// Package message defines group message type tags.
package message

const (
	Text = "texto"
	File = "arquivo"
)
