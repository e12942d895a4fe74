// Package cli implements the interactive spacebook shell.
//
// The shell is a thin front end: it reads commands, prompts for the fields an
// operation needs, calls the services and prints what they return. Which
// commands are offered depends on the kind of account signed in.
package cli
