package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-spectra-pipeline/internal/model"
)

// WriteReport writes the per-set outcome report into the run directory,
// grouped by failure category with the successful sets last.
func WriteReport(runDir string, results []model.RunResult) error {
	byStatus := make(map[model.RunStatus][]model.RunResult)
	for _, res := range results {
		byStatus[res.Status] = append(byStatus[res.Status], res)
	}

	var b strings.Builder
	sections := []struct {
		status model.RunStatus
		title  string
	}{
		{model.StatusInterpolationFailed, "No spectrum generated: atmosphere interpolation failed"},
		{model.StatusScriptFailed, "No spectrum generated: control-file generation failed"},
		{model.StatusExecutionFailed, "No spectrum generated: synthesis execution failed"},
		{model.StatusTimeout, "No spectrum generated: external process timed out"},
	}
	for _, section := range sections {
		failed := byStatus[section.status]
		if len(failed) == 0 {
			continue
		}
		b.WriteString("----------------------------------------\n")
		b.WriteString(section.title + ":\n")
		b.WriteString("----------------------------------------\n")
		for _, res := range failed {
			fmt.Fprintf(&b, "%s  (%s)\n", formatParameters(res.Parameters), res.Diagnostic)
		}
		b.WriteString("\n")
	}

	b.WriteString("----------------------------------------\n")
	b.WriteString("Spectra generated:\n")
	b.WriteString("----------------------------------------\n")
	for _, res := range byStatus[model.StatusSuccess] {
		fmt.Fprintf(&b, "%s\n", formatParameters(res.Parameters))
	}

	path := filepath.Join(runDir, "stellar_parameters.txt")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func formatParameters(p model.StellarParameters) string {
	return fmt.Sprintf("teff=%g logg=%g z=%g mg=%g ca=%g", p.Teff, p.Logg, p.Z, p.Mg, p.Ca)
}
