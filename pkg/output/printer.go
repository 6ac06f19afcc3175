/*
Copyright (c) 2021 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

  http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

// PrinterBuilder contains the data and logic needed to create new printers.
type PrinterBuilder struct {
	writer io.Writer
	pager  string
	format Format
}

// Printer knows how to write output text, optionally through a pager.
type Printer struct {
	writer io.Writer
	format Format
	pager  *pager
}

// pager is a running pager process that reads what the printer writes.
type pager struct {
	cmd    *exec.Cmd
	stop   chan struct{}
	reader *os.File
	writer *os.File
}

// Make sure that we implement the io.Writer interface.
var _ io.Writer = (*Printer)(nil)

// NewPrinter creates a builder that can then be used to configure and create a printer.
func NewPrinter() *PrinterBuilder {
	return &PrinterBuilder{
		writer: os.Stdout,
		format: FormatJSON,
	}
}

// Writer sets the writer where the printer will write. It will usually be a file or the standard
// output fo the process. This is mandatory.
func (b *PrinterBuilder) Writer(value io.Writer) *PrinterBuilder {
	b.writer = value
	return b
}

// Pager indicates the command that will be used to display output page by page. If empty no pager
// will be used. The pager is only used when the writer is a terminal.
func (b *PrinterBuilder) Pager(value string) *PrinterBuilder {
	b.pager = value
	return b
}

// Format sets the format used to print documents. The default is JSON.
func (b *PrinterBuilder) Format(value Format) *PrinterBuilder {
	b.format = value
	return b
}

// Build uses the data stored in the builder to create a new printer.
func (b *PrinterBuilder) Build(ctx context.Context) (result *Printer, err error) {
	if b.writer == nil {
		err = fmt.Errorf("writer is mandatory")
		return
	}
	format, err := ParseFormat(string(b.format))
	if err != nil {
		return
	}

	result = &Printer{
		writer: b.writer,
		format: format,
	}

	path, args, err := b.pagerCommand()
	if err != nil {
		result = nil
		return
	}
	if path == "" || !IsTerminal(b.writer) {
		return
	}
	result.pager, err = startPager(b.writer, path, args)
	if err != nil {
		result = nil
	}
	return
}

// pagerCommand translates the pager configuration into a command path and a list of arguments.
// The path is empty if paging is disabled or the command isn't installed.
func (b *PrinterBuilder) pagerCommand() (path string, args []string, err error) {
	chunks := strings.Fields(b.pager)
	if len(chunks) == 0 {
		return
	}
	path, err = exec.LookPath(chunks[0])
	if errors.Is(err, exec.ErrNotFound) {
		glog.V(1).Infof("Pager '%s' isn't available, writing directly", chunks[0])
		path = ""
		err = nil
		return
	}
	if err != nil {
		return
	}
	args = chunks[1:]
	return
}

func startPager(output io.Writer, path string, args []string) (result *pager, err error) {
	reader, writer, err := os.Pipe()
	if err != nil {
		return
	}
	cmd := exec.Command(path, args...) // #nosec G204
	cmd.Stdin = reader
	cmd.Stdout = output
	err = cmd.Start()
	if err != nil {
		reader.Close()
		writer.Close()
		return
	}

	// The user may quit the pager before we finish writing. Closing both ends of the pipe when
	// it exits makes the pending writes fail instead of blocking.
	result = &pager{
		cmd:    cmd,
		stop:   make(chan struct{}),
		reader: reader,
		writer: writer,
	}
	go func() {
		_ = cmd.Wait()
		reader.Close()
		writer.Close()
		close(result.stop)
	}()
	return
}

// Format returns the format used to print documents.
func (p *Printer) Format() Format {
	return p.format
}

// Terminal checks if the output of the printer is a terminal.
func (p *Printer) Terminal() bool {
	return IsTerminal(p.writer)
}

// Write is the implementation of the io.Writer interface.
func (p *Printer) Write(b []byte) (n int, err error) {
	if p.pager != nil {
		return p.pager.writer.Write(b)
	}
	return p.writer.Write(b)
}

// Close releases all the resources used by the printer, waiting for the pager to exit.
func (p *Printer) Close() error {
	if p.pager != nil {
		p.pager.reader.Close()
		p.pager.writer.Close()
		<-p.pager.stop
	}
	return nil
}
