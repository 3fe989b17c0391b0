package main

import (
	"carrier-match-service/internal/adapters/model"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// readArg returns the argument itself, or the contents of the file it names
// when prefixed with @.
func readArg(arg string) ([]byte, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return []byte(arg), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read argument file: %w", err)
	}
	return b, nil
}

func newModelStore() *model.FileModelStore {
	return model.NewFileModelStore(&http.Client{Timeout: 10 * time.Second})
}
