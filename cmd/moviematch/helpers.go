package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads interactive answers line by line, re-prompting on
// invalid input instead of failing.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	return &prompter{in: scanner, out: out}
}

// line asks once and returns the trimmed answer. io.EOF means the input
// stream ended (user closed stdin).
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// nonEmptyLine re-prompts until the answer is non-empty.
func (p *prompter) nonEmptyLine(prompt string) (string, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// intInRange re-prompts until the answer is a number in [low, high].
func (p *prompter) intInRange(prompt string, low, high int) (int, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(answer)
		if convErr != nil || value < low || value > high {
			fmt.Fprintf(p.out, "Enter a number between %d and %d.\n", low, high)
			continue
		}
		return value, nil
	}
}

// yesNo re-prompts until the answer starts with y or n.
func (p *prompter) yesNo(prompt string) (bool, error) {
	for {
		answer, err := p.line(prompt + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Answer y or n.")
	}
}
