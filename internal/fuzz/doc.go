// Package fuzztests houses Go fuzz harnesses for the MiNI pipeline
// (source -> lexer -> parser -> sema -> hoist -> IR). They guard against
// panics, hangs and broken tree invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
