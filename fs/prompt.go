// Package fs loads regchat inputs from the local filesystem.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/regchat"
)

// LoadPromptTemplate reads and parses the prompt template at path.
func LoadPromptTemplate(path string) (*regchat.PromptTemplate, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, regchat.Errorf(regchat.ENOTFOUND, "prompt template %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template: %w", err)
	}
	return regchat.ParsePromptTemplate(string(data))
}
