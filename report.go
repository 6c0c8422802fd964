// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package envkeeper

import (
	"fmt"
	"io"

	"github.com/MKhiriev/go-env-keeper/schema"
)

// report prints human-readable guidance for a failed validation and ends
// the process through exit. Every path calls exit: a success code when
// allowMissing is set and mode is exactly "development", a failure code
// otherwise. The exit func is injected so tests can observe the code.
func report(w io.Writer, exit func(int), verr *schema.Error, allowMissing bool, mode string) {
	fmt.Fprintln(w, "Invalid environment variables:")
	for _, issue := range verr.Issues {
		fmt.Fprintf(w, "  - %s: %s\n", issue.Path, issue.Message)
	}

	// Second pass over the same issue list: shell hints for variables that
	// are absent or of the wrong type.
	var hinted bool
	for _, issue := range verr.Issues {
		if issue.Kind != schema.KindMissing && issue.Kind != schema.KindInvalidType {
			continue
		}
		if !hinted {
			fmt.Fprintln(w, "\nTo fix, export the variables before starting the process:")
			hinted = true
		}
		fmt.Fprintf(w, "  export %s=<value>\n", issue.Path)
	}

	if allowMissing && mode == "development" {
		fmt.Fprintln(w, "\nWARNING: continuing despite invalid environment (development mode)")
		exit(0)
		return
	}

	exit(1)
}
