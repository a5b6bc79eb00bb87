package compiler_errors

import (
	"fmt"
	"io"
)

type CompilerError interface {
	error
	GetMessage() string
	GetLine() int
	GetColumn() int
}

// Formatter renders one diagnostic line. The default renders
// "<file>:<line>:<column>: <message>".
type Formatter func(fileName string, err CompilerError) string

type ErrorHandler interface {
	AddError(fileName string, err CompilerError)
	HasErrors() bool
	Errors() []CompilerError
	Report() int
}

type fileError struct {
	fileName string
	err      CompilerError
}

type CompilerErrorHandler struct {
	errors []fileError
	writer io.Writer
	format Formatter
}

func NewErrorHandler(outputWriter io.Writer) *CompilerErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]fileError, 0),
		writer: outputWriter,
		format: DefaultFormatter,
	}
}

func (eh *CompilerErrorHandler) WithFormatter(f Formatter) *CompilerErrorHandler {
	eh.format = f
	return eh
}

func (eh *CompilerErrorHandler) AddError(fileName string, err CompilerError) {
	eh.errors = append(eh.errors, fileError{fileName: fileName, err: err})
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	result := make([]CompilerError, len(eh.errors))
	for i, fe := range eh.errors {
		result[i] = fe.err
	}

	return result
}

// Report writes every collected error and returns how many there were.
func (eh *CompilerErrorHandler) Report() int {
	if len(eh.errors) == 0 {
		return 0
	}

	fmt.Fprintln(eh.writer, "Build failed with errors:")
	for _, fe := range eh.errors {
		fmt.Fprintln(eh.writer, eh.format(fe.fileName, fe.err))
	}

	return len(eh.errors)
}

func DefaultFormatter(fileName string, err CompilerError) string {
	if fileName == "" {
		return fmt.Sprintf("%d:%d: %s", err.GetLine(), err.GetColumn(), err.GetMessage())
	}

	return fmt.Sprintf("%s:%d:%d: %s", fileName, err.GetLine(), err.GetColumn(), err.GetMessage())
}
