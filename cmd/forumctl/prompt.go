package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm shows a blocking yes/no prompt and reports the answer. Anything
// but an explicit yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
