package errors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
)

// ErrorDump is the structured view of an error chain attached to log
// entries. File and CSV fields are filled when the chain bottoms out in
// a filesystem or csv parsing failure, which is where most runtime
// errors in this service originate.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	FilePath  string `json:"file_path,omitempty"`
	FileOp    string `json:"file_op,omitempty"`
	CSVLine   string `json:"csv_line,omitempty"`
	CSVColumn string `json:"csv_column,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		d.FilePath = pathErr.Path
		d.FileOp = pathErr.Op
		return d
	}

	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		d.CSVLine = strconv.Itoa(csvErr.Line)
		d.CSVColumn = strconv.Itoa(csvErr.Column)
		return d
	}

	return d
}
