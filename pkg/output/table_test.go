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
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint
)

var _ = Describe("Table", func() {
	var ctx context.Context
	var buffer *bytes.Buffer
	var printer *Printer

	BeforeEach(func() {
		var err error

		// Create a context:
		ctx = context.Background()

		// Create the buffer:
		buffer = &bytes.Buffer{}

		// Create a printer that writes to a memory buffer so that we can check the results:
		printer, err = NewPrinter().
			Writer(buffer).
			Format(FormatTable).
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		// Close the printer:
		if printer != nil {
			err := printer.Close()
			Expect(err).ToNot(HaveOccurred())
		}
	})

	It("Uses the columns described by the asset", func() {
		table, err := printer.NewTable().
			Name("bindings").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		err = table.WriteHeaders()
		Expect(err).ToNot(HaveOccurred())
		err = table.Close()
		Expect(err).ToNot(HaveOccurred())

		Expect(buffer.String()).To(MatchRegexp(`^ROLE\s+MEMBER\s+CONDITION\n$`))
	})

	It("Aligns the columns to the widest value", func() {
		table, err := printer.NewTable().
			Name("bindings").
			Columns("role,member").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		Expect(table.WriteHeaders()).To(Succeed())
		Expect(table.WriteColumns([]any{"roles/viewer", "user:a@example.com"})).To(Succeed())
		Expect(table.WriteColumns([]any{"roles/owner", "serviceAccount:svc@proj.iam.gserviceaccount.com"})).To(Succeed())
		Expect(table.Close()).To(Succeed())

		lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
		Expect(lines).To(Equal([]string{
			"ROLE          MEMBER",
			"roles/viewer  user:a@example.com",
			"roles/owner   serviceAccount:svc@proj.iam.gserviceaccount.com",
		}))
	})

	It("Truncates values to the width of the column", func() {
		table, err := printer.NewTable().
			Name("bindings").
			Columns("condition").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		Expect(table.WriteColumns([]any{strings.Repeat("x", 50)})).To(Succeed())
		Expect(table.Close()).To(Succeed())
		Expect(buffer.String()).To(Equal(strings.Repeat("x", 40) + "\n"))
	})

	It("Writes nil values as NONE", func() {
		table, err := printer.NewTable().
			Name("bindings").
			Columns("role", "condition").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		Expect(table.WriteColumns([]any{"roles/viewer", nil})).To(Succeed())
		Expect(table.Close()).To(Succeed())
		Expect(buffer.String()).To(Equal("roles/viewer  NONE\n"))
	})

	It("Derives headers for columns that aren't described", func() {
		table, err := printer.NewTable().
			Name("unknown").
			Columns("audit_config").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		Expect(table.WriteHeaders()).To(Succeed())
		Expect(table.Close()).To(Succeed())
		Expect(buffer.String()).To(Equal("AUDIT CONFIG\n"))
	})

	It("Rejects rows with the wrong number of values", func() {
		table, err := printer.NewTable().
			Name("bindings").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())

		err = table.WriteColumns([]any{"roles/viewer"})
		Expect(err).To(MatchError(ContainSubstring("has 3 columns, but 1 values")))
	})

	It("Requires a name", func() {
		_, err := printer.NewTable().Build(ctx)
		Expect(err).To(MatchError("name is mandatory"))
	})
})
