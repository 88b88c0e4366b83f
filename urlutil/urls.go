// Package urlutil prepares the URL list handed to the downloader:
// trimming, `.txt` list expansion, and order-preserving dedup.
package urlutil

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func Clean(rawURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
}

func containsFold(lines []string, value string) bool {
	for _, l := range lines {
		if strings.EqualFold(l, value) {
			return true
		}
	}

	return false
}

func readLines(filename string) (lines []string, err error) {
	f, err := os.Open(filename)
	if nil != err {
		return nil, fmt.Errorf("failed to open URL list file: %v", err)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			err = fmt.Errorf("failed to close URL list file: %v", closeErr)
		}
	}()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); nil != err {
		return nil, fmt.Errorf("failed to read URL list file: %v", err)
	}

	return lines, nil
}

// Process expands `.txt` arguments into their contained URLs and
// deduplicates everything case-insensitively, preserving first-seen
// order.
func Process(urls []string) ([]string, error) {
	processed := make([]string, 0, len(urls))
	var textPaths []string

	for _, u := range urls {
		if strings.HasSuffix(u, ".txt") {
			if containsFold(textPaths, u) {
				continue
			}
			lines, err := readLines(u)
			if nil != err {
				return nil, err
			}
			for _, line := range lines {
				if cleaned := Clean(line); !containsFold(processed, cleaned) {
					processed = append(processed, cleaned)
				}
			}
			textPaths = append(textPaths, u)
		} else if cleaned := Clean(u); !containsFold(processed, cleaned) {
			processed = append(processed, cleaned)
		}
	}

	return processed, nil
}
