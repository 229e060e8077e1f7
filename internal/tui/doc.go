// Package tui implements the interactive tree navigator.
//
// The navigator draws a few levels of a binary tree below a root-of-view
// and reads one command per line from a prompt:
//
//	a, d        move the view to the left or right child
//	w           move the view back up (after a or d)
//	attr[:attr] show the named node attributes, joined by colons
//	(empty)     repeat the last accepted command
//	q           quit (also quit, exit, ctrl+c)
//
// Component architecture:
//
//	model.go   : model, Init/Update, frame rendering
//	command.go : prompt parsing and state transitions
//	theme.go   : centralized color + style definitions
//	header.go  : top bar and prompt line
//	helpers.go : string helpers
package tui
