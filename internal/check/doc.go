// Package check defines the validation checks run against a built site
// and the runner that executes them in order. Each check records its
// findings in the shared audit report; a returned error marks the check
// failed without stopping the remaining checks.
package check
