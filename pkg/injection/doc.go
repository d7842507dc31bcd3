// Package injection runs the synthesis pass for each configured tool.
//
// For a tool the pipeline:
//
//  1. filters the fragments by their directory conditions,
//  2. resolves each active fragment to text (file or command output),
//  3. parses the text and folds it into an accumulator in declaration order,
//  4. serializes the accumulator once per injection target, choosing the
//     format from the target's extension, and writes it,
//  5. prints an export line for targets bound to an environment variable.
//
// A failure aborts the current tool only. Export lines go to the configured
// stdout writer and nowhere else, so the output can be eval'd by a shell.
package injection
