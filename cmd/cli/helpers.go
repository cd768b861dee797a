package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// parseInts converts every argument to an int.
func parseInts(args []string) ([]int, error) {
	nums := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// joinText joins positional arguments into one utterance.
func joinText(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("text is empty")
	}
	return text, nil
}
