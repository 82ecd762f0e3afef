// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited JSON so a session can be inspected
// with `jobsh events report` or any JSON tooling.
package logger
