package commands

import (
	"context"
	"fmt"

	"github.com/okra-platform/smithy-codegen/internal/codegen"
)

// Targets lists the registered target languages
func (c *Controller) Targets(ctx context.Context) error {
	for _, language := range codegen.DefaultRegistry.Languages() {
		fmt.Fprintln(c.out(), language)
	}
	return nil
}
