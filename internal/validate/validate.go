// Package validate runs lightweight static pre-checks over learner
// submissions before any evaluation happens. It only inspects textual and
// syntactic form; it never executes the submission.
package validate

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// ClientImportPath is the import path of the AI-client package a submission
// is expected to use.
const ClientImportPath = "drill/ai"

// clientQualifier is how submissions reference the client package.
const clientQualifier = "ai."

// Check returns the list of validation errors for a submission, or an empty
// list when it passes. Errors are collected, not short-circuited.
func Check(code string) []string {
	var errs []string

	if referencesClient(code) && !importsClient(code) {
		errs = append(errs, fmt.Sprintf("missing required import: %q", ClientImportPath))
	}

	file, err := parse(code)
	switch {
	case err != nil:
		errs = append(errs, fmt.Sprintf("syntax error: %v", err))
	case file.Name.Name != "main":
		errs = append(errs, fmt.Sprintf("submission must be package main, not package %s", file.Name.Name))
	}

	return errs
}

// EnsureMainPackage prepends a main package clause when the submission does
// not declare one. Both validation and the sandbox normalize submissions
// through this helper so they agree on what gets parsed and what gets run.
func EnsureMainPackage(code string) string {
	if hasPackageClause(code) {
		return code
	}
	return "package main\n\n" + code
}

// hasPackageClause reports whether the first line of real code is a package
// declaration. Blank lines and comments do not count as code, so a comment
// mentioning the word "package" does not suppress wrapping.
func hasPackageClause(code string) bool {
	inBlockComment := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		if inBlockComment {
			if strings.Contains(trimmed, "*/") {
				inBlockComment = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "/*") {
			if !strings.Contains(trimmed[2:], "*/") {
				inBlockComment = true
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		return strings.HasPrefix(trimmed, "package ")
	}
	return false
}

// referencesClient reports whether the submission uses the client package
// qualifier anywhere.
func referencesClient(code string) bool {
	return strings.Contains(code, clientQualifier)
}

// importsClient matches both the single-line form and the factored import
// block form by looking for the quoted path.
func importsClient(code string) bool {
	return strings.Contains(code, `"`+ClientImportPath+`"`)
}

func parse(code string) (*ast.File, error) {
	fset := token.NewFileSet()
	return parser.ParseFile(fset, "submission.go", EnsureMainPackage(code), 0)
}
