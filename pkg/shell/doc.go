// Package shell runs fragment commands through the platform shell and
// renders the export lines relconf prints for env-bound injections.
package shell
