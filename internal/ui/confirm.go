// Package ui holds the small interactive prompts the CLI needs.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm prints a yes/no prompt on stderr and reads the answer from r.
// Anything other than "y"/"yes" (case-insensitive) is a no, including a read
// failure, so scripted runs that close stdin fall through safely.
func Confirm(r io.Reader, prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
