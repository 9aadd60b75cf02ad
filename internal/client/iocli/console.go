package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console IO поверх произвольных потоков. Пароль читается без эха, если
// вход является терминалом.
type Console struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewConsole создает Console; для cobra это cmd.InOrStdin() и cmd.OutOrStdout()
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// NewStdio консоль на stdin/stdout
func NewStdio() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// ReadInput читает строку без завершающих пробелов
func (c *Console) ReadInput(prompt string) (string, error) {
	c.Printf("%s", prompt)
	input, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает пароль; на терминале ввод не отображается
func (c *Console) ReadPassword(prompt string) (string, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.ReadInput(prompt)
	}

	c.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(f.Fd()))
	c.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
