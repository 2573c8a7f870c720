package toolchain

import (
	"fmt"
	"strings"
	"text/template"
)

// optimizeVars is the fixed set of placeholders available to an optimize
// command template. Templates referencing anything else fail validation;
// nothing from the config file is ever evaluated as code.
type optimizeVars struct {
	Contract  string
	Workspace string
}

// RenderOptimizeCommand substitutes the named placeholders into a
// per-contract optimize command template.
func RenderOptimizeCommand(tmpl, contract, workspace string) (string, error) {
	parsed, err := template.New("optimize").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid optimize command template: %w", err)
	}

	var rendered strings.Builder
	if err := parsed.Execute(&rendered, optimizeVars{Contract: contract, Workspace: workspace}); err != nil {
		return "", fmt.Errorf("invalid optimize command template: %w", err)
	}

	return rendered.String(), nil
}
