package output

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint
)

var _ = Describe("Printer", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("Doesn't page output that isn't a terminal", func() {
		buffer := &bytes.Buffer{}
		printer, err := NewPrinter().
			Writer(buffer).
			Pager("cat").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(printer.pager).To(BeNil())

		_, err = printer.Write([]byte("hello\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(printer.Close()).To(Succeed())
		Expect(buffer.String()).To(Equal("hello\n"))
	})

	It("Ignores pagers that aren't installed", func() {
		printer, err := NewPrinter().
			Writer(&bytes.Buffer{}).
			Pager("no-such-pager-command --flag").
			Build(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(printer.pager).To(BeNil())
	})

	It("Defaults to JSON", func() {
		printer, err := NewPrinter().Writer(&bytes.Buffer{}).Build(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(printer.Format()).To(Equal(FormatJSON))
	})

	It("Rejects unknown formats", func() {
		_, err := NewPrinter().Writer(&bytes.Buffer{}).Format("xml").Build(ctx)
		Expect(err).To(MatchError(ContainSubstring("unsupported output format 'xml'")))
	})

	It("Requires a writer", func() {
		_, err := NewPrinter().Writer(nil).Build(ctx)
		Expect(err).To(MatchError("writer is mandatory"))
	})

	DescribeTable("Parses formats",
		func(value string, expected Format) {
			format, err := ParseFormat(value)
			Expect(err).ToNot(HaveOccurred())
			Expect(format).To(Equal(expected))
		},
		Entry("Empty", "", FormatJSON),
		Entry("JSON", "json", FormatJSON),
		Entry("YAML in upper case", "YAML", FormatYAML),
		Entry("Table", " table ", FormatTable),
	)
})
