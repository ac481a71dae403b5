package services

import (
	"bytes"
	"fmt"
	"strings"
)

// renderSimplePDF produces a minimal single-page A4 PDF with the given text
// lines in Helvetica. Enough structure for any conforming viewer; the
// documents here are letters, not typography.
func renderSimplePDF(title string, lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 18 Tf\n50 780 Td\n")
	content.WriteString(fmt.Sprintf("(%s) Tj\n", escapePDFText(title)))
	content.WriteString("/F1 12 Tf\n0 -40 Td\n")
	for _, line := range lines {
		content.WriteString(fmt.Sprintf("(%s) Tj\n0 -20 Td\n", escapePDFText(line)))
	}
	content.WriteString("ET\n")

	stream := content.Bytes()

	var buf bytes.Buffer
	offsets := make([]int, 0, 6)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	writeObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart))

	return buf.Bytes()
}

func escapePDFText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}
