package classlist

import (
	"bufio"
	"io"
	"strings"
)

// Section is the group of class names found in one archive. Archive is the header written before the
// classes; it is empty for listings that carry no per-archive header.
type Section struct {
	Archive string
	Classes []string
}

// Listing is the ordered result of a walk, rendered in the .clz format read by Tattletale.
type Listing struct {
	Sections []Section
}

// ClassCount is the total number of class names across all sections.
func (l Listing) ClassCount() int {
	var n int
	for _, s := range l.Sections {
		n += len(s.Classes)
	}
	return n
}

// WriteTo renders the listing: a "<archive>=" line before each labeled section, then one class per line.
func (l Listing) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	writeLine := func(line string) error {
		n, err := bw.WriteString(line + "\n")
		written += int64(n)
		return err
	}

	for _, s := range l.Sections {
		if s.Archive != "" {
			if err := writeLine(s.Archive + "="); err != nil {
				return written, err
			}
		}
		for _, c := range s.Classes {
			if err := writeLine(c); err != nil {
				return written, err
			}
		}
	}
	return written, bw.Flush()
}

func (l Listing) String() string {
	var sb strings.Builder
	// writes to a strings.Builder do not fail
	_, _ = l.WriteTo(&sb)
	return sb.String()
}
