// Package iocli is the terminal boundary of the client CLI.
package iocli

import "io"

// IO ввод и вывод команд CLI
type IO interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
