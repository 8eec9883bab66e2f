package parse

import (
	"bufio"
	"io"
	"strings"
)

// IDs reads whitespace separated identifiers. "#" starts a comment which lasts until the end of the line.
func IDs(reader io.Reader) ([]string, error) {
	var ids []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if index := strings.IndexByte(line, '#'); index != -1 {
			line = line[:index]
		}
		ids = append(ids, strings.Fields(line)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
