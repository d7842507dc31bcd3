// Package rules decides which fragments take part in a merge.
//
// A fragment carries a list of directory conditions. The fragment is active
// when the list is empty or when any condition matches the working
// directory:
//
//	directory: ~/work                       matches ~/work only
//	directory: ~/work, match-subdirectories matches ~/work and everything below
//
// Both sides are canonicalized before comparing, so a symlinked working
// directory matches conditions on its real path.
package rules
